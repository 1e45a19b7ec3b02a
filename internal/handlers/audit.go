package handlers

import (
	"net/http"
	"strconv"

	"asset-register/internal/database"

	"github.com/gin-gonic/gin"
)

func ListAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := database.ListAuditLogs(db(c), c.Query("entity"), c.Query("key"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusOK, logs)
}

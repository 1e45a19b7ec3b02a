package handlers

import (
	"net/http"

	"asset-register/internal/database"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := database.Authenticate(db(c), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	sess := sessions.Default(c)
	sess.Clear()
	sess.Set("user_id", user.ID)
	if err := sess.Save(); err != nil {
		log.WithError(err).Error("failed to save session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	render(c, http.StatusOK, user)
}

func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = sess.Save()
	c.Status(http.StatusNoContent)
}

func Me(c *gin.Context) {
	render(c, http.StatusOK, currentUser(c))
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"asset-register/internal/database"
	"asset-register/internal/middleware"
	"asset-register/internal/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// db scopes the shared connection to the request.
func db(c *gin.Context) *gorm.DB {
	return database.DB.WithContext(c.Request.Context())
}

func currentUser(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}

func render(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// respondError maps domain errors onto HTTP statuses. Anything unknown is
// logged and reported as a 500 without details.
func respondError(c *gin.Context, err error) {
	var verr *database.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Msg, "field": verr.Field})
	case errors.Is(err, database.ErrValidation),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrCoordinatesRange),
		errors.Is(err, models.ErrSuperuserFlags):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrFullyDepreciated), errors.Is(err, models.ErrZeroLife):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

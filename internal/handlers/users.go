package handlers

import (
	"net/http"

	"asset-register/internal/database"
	"asset-register/internal/models"

	"github.com/gin-gonic/gin"
)

type userRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsStaff     *bool  `json:"is_staff"`
	IsSuperuser *bool  `json:"is_superuser"`
	IsActive    *bool  `json:"is_active"`
}

func ListUsers(c *gin.Context) {
	users, err := database.ListUsers(db(c))
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusOK, users)
}

// CreateUser goes through the superuser factory when the request asks for a
// superuser, so its flag rules apply.
func CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	fields := database.UserFields{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		IsStaff:     req.IsStaff,
		IsSuperuser: req.IsSuperuser,
		IsActive:    req.IsActive,
	}

	var (
		user *models.User
		err  error
	)
	if req.IsSuperuser != nil && *req.IsSuperuser {
		user, err = database.CreateSuperuser(db(c), req.Email, req.Password, fields)
	} else {
		user, err = database.CreateUser(db(c), req.Email, req.Password, fields)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	database.CreateAuditLog(db(c), currentUser(c), "user", user.Email, models.ActionCreate, "created user "+user.Email)
	render(c, http.StatusCreated, user)
}

type passwordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

func SetPassword(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := database.SetPassword(db(c), id, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type permissionRequest struct {
	Codename string `json:"codename" binding:"required"`
}

func GrantPermission(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req permissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := database.GrantPermission(db(c), id, models.Permission(req.Codename)); err != nil {
		respondError(c, err)
		return
	}
	user, err := database.GetUser(db(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	render(c, http.StatusOK, user)
}

func RevokePermission(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := database.RevokePermission(db(c), id, models.Permission(c.Param("codename"))); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if me := currentUser(c); me != nil && me.ID == id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete the current user"})
		return
	}
	if err := database.DeleteUser(db(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

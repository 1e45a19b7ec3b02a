package middleware

import (
	"net/http"

	"asset-register/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func abortJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		if sess.Get("user_id") == nil || CurrentUser(c) == nil {
			abortJSON(c, http.StatusUnauthorized, "authentication required")
			return
		}
		c.Next()
	}
}

func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsStaff {
			abortJSON(c, http.StatusForbidden, "access denied")
			return
		}
		c.Next()
	}
}

func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsSuperuser {
			abortJSON(c, http.StatusForbidden, "access denied")
			return
		}
		c.Next()
	}
}

// RequirePermission lets through users holding every listed permission.
func RequirePermission(perms ...models.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		for _, p := range perms {
			if !user.HasPerm(p) {
				abortJSON(c, http.StatusForbidden, "missing permission "+string(p))
				return
			}
		}
		c.Next()
	}
}

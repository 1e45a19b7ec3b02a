package middleware

import (
	"asset-register/internal/database"
	"asset-register/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const currentUserKey = "CurrentUser"

// InjectUser loads the session's user, with permissions, into the context.
// Deactivated users are treated as logged out.
func InjectUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uidRaw := sess.Get("user_id"); uidRaw != nil {
			if uid, ok := uidRaw.(uint); ok && uid > 0 {
				user, err := database.GetUser(database.DB.WithContext(c.Request.Context()), uid)
				if err == nil && user.IsActive {
					c.Set(currentUserKey, user)
				}
			}
		}

		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

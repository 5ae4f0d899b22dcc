package middleware

import (
	"github.com/gin-gonic/gin"

	"readtrack-backend/internal/shared/response"
)

// RequireAdmin rejects requests whose authenticated role is not admin.
// Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		if role != "admin" {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

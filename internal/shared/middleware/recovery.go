package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"readtrack-backend/internal/shared/response"
	"readtrack-backend/pkg/logger"
)

// Recovery converts panics into 500 responses instead of dropping the connection
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", fmt.Errorf("%v", r), map[string]interface{}{
					"method":     c.Request.Method,
					"path":       c.Request.URL.Path,
					"request_id": c.GetString("requestID"),
				})

				response.InternalError(c, "An unexpected error occurred")
				c.Abort()
			}
		}()

		c.Next()
	}
}

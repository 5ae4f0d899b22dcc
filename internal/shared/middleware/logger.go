package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"readtrack-backend/pkg/logger"
)

// Logger logs every request with latency, status, and request ID
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString("requestID"),
		}

		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request completed", nil, fields)
		case c.Writer.Status() >= 400:
			logger.Warn("request completed", fields)
		default:
			logger.Info("request completed", fields)
		}
	}
}

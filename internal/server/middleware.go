// internal/server/middleware.go
package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"linkedin-autoposter/internal/common/logger"
)

// RequestLogging logs one line per request with method, path, status and
// latency.
func RequestLogging(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Info("request handled", map[string]interface{}{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latencyMs": time.Since(start).Milliseconds(),
		})
	}
}

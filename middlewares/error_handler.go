package middlewares

import (
	"github.com/gin-gonic/gin"

	"nutritrack-backend/utils"
)

// ErrorHandler forwards errors attached to the gin context to Sentry.
// Business-rule declines never reach here; controllers only attach internal
// failures.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			for _, ginErr := range c.Errors {
				utils.CaptureError(ginErr.Err, map[string]interface{}{
					"endpoint": c.Request.URL.Path,
					"method":   c.Request.Method,
					"status":   c.Writer.Status(),
				})
			}
		}
	}
}

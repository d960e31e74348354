package middleware

import (
	"tablemate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger attaches a request-scoped logger to the Gin context and
// emits one line per completed request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger().With(
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("clientIP", getClientIP(c)),
		)
		c.Set("logger", logger)

		c.Next()

		logger.Info("request completed", zap.Int("status", c.Writer.Status()))
	}
}

package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggerKey is the gin context key holding the request logger.
const LoggerKey = "logger"

// RequestLogger stores a request scoped logger in the context and logs
// every completed request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := logger.With(zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
		c.Set(LoggerKey, reqLogger)

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", clientIP(c)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= 500:
			reqLogger.Error("Request failed", fields...)
		case strings.HasPrefix(c.Request.URL.Path, "/metrics"), c.Request.URL.Path == "/health":
			reqLogger.Debug("Request", fields...)
		default:
			reqLogger.Info("Request", fields...)
		}
	}
}

func isAPI(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

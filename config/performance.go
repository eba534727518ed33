package config

import (
	"time"

	"barberflow-backend/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const slowRequestThreshold = 200 * time.Millisecond

// PerformanceLogger logs every request with its latency and feeds the HTTP
// metrics. Requests slower than 200ms are logged at warn level.
func PerformanceLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), latency)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("requestId", c.GetString("requestId")),
		}
		if latency > slowRequestThreshold {
			logger.Warn("slow request", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}

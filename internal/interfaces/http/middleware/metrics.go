package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"idrx-gate.backend/pkg/metrics"
)

// MetricsMiddleware records request durations per route
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

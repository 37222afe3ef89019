package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"khata/internal/metrics"
)

// Metrics records request counts and latency per route template, so
// /documents/:id is one series rather than one per document.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

package middleware

import (
	"strconv"
	"time"

	"estoquecestas/internal/infra"

	"github.com/gin-gonic/gin"
)

// Prometheus records request count and latency per route template.
func Prometheus() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "undefined"
		}
		infra.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		infra.HTTPRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}

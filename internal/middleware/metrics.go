package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/vetclinic-api/pkg/metrics"
)

// Metrics records request count, latency and errors by route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

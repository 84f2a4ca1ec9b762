package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/vetclinic-api/pkg/logger"
)

// CacheControl marks successful GET responses as privately cacheable for
// maxAge seconds and everything else as not storable.
func CacheControl(maxAge int) gin.HandlerFunc {
	value := "private, max-age=" + strconv.Itoa(maxAge) + ", must-revalidate"
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet && maxAge > 0 {
			c.Header("Cache-Control", value)
		} else {
			c.Header("Cache-Control", "no-store")
		}
		c.Header("Vary", "Cookie, Authorization")
		c.Next()
	}
}

// Invalidator drops derived data after entity writes.
type Invalidator interface {
	InvalidateDashboard(ctx context.Context) error
}

// InvalidateCache clears the dashboard after every successful write. A
// failure only leaves the dashboard stale until its TTL runs out.
func InvalidateCache(inv Invalidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		if err := inv.InvalidateDashboard(c.Request.Context()); err != nil {
			logger.FromContext(c.Request.Context()).Warn().Err(err).Msg("failed to invalidate dashboard cache")
		}
	}
}

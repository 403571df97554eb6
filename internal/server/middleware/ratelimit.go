package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/fulexo/platform/internal/ratelimit"
)

// WithRateLimit applies the route's declared limit. Must run after
// WithLoggingTracing (for request metadata) and WithAuthContext (so
// authenticated traffic is keyed per user instead of per client IP).
func WithRateLimit(gate *ratelimit.Gate, cfg ratelimit.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gate.Check(c.Request.Context(), cfg); err != nil {
			AbortWithError(c, err)
			return
		}

		c.Next()
	}
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit configures the write-path limiter. Zero RPS disables it.
type RateLimit struct {
	RPS   float64
	Burst int
}

// WriteLimiter throttles mutating requests with a process-wide token bucket.
// Reads pass through: a scorer hammering increments during a fast break is
// the case the burst is sized for, not page loads.
func WriteLimiter(cfg RateLimit) gin.HandlerFunc {
	if cfg.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
			if !limiter.Allow() {
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate_limited"})
				return
			}
		}
		c.Next()
	}
}

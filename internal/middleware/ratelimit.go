package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"khata/internal/logger"
	"khata/internal/metrics"
	"khata/internal/port"
)

// KeyFunc derives the rate limit bucket for a request.
type KeyFunc func(c *gin.Context) string

// ByIP buckets requests by client address.
func ByIP(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// ByUser buckets authenticated requests by user and falls back to the client
// address when no user is in context.
func ByUser(c *gin.Context) string {
	if id, err := GetUserID(c); err == nil {
		return "user:" + id.String()
	}
	return ByIP(c)
}

// RateLimit rejects requests over the limiter's budget with 429. Limiter
// errors are logged and the request is let through.
func RateLimit(limiter port.RateLimiter, scope string, keyFn KeyFunc, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + keyFn(c)
		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.FromContext(c.Request.Context(), log).Warn("rate limiter unavailable, allowing request",
				zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retry := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			metrics.RateLimited.WithLabelValues(scope).Inc()
			abort(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
			return
		}

		c.Next()
	}
}

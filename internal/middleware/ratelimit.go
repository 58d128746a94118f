package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkwell-app/inkwell/internal/pkg/response"
)

const rateLimitKeyPrefix = "inkwell:rate_limit:"

// WindowCounter counts hits per key in fixed windows.
type WindowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit rejects a client IP with 429 once it exceeds limit requests in a
// window. Counter errors let the request through.
func RateLimit(counter WindowCounter, limit int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	retryAfter := strconv.Itoa(int(max(window.Seconds(), 1)))
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" || counter == nil {
			c.Next()
			return
		}

		count, err := counter.Hit(c.Request.Context(), rateLimitKeyPrefix+ip, window)
		if err != nil {
			log.Warn("rate limit counter failed", zap.Error(err))
			c.Next()
			return
		}

		if count > int64(limit) {
			c.Header("Retry-After", retryAfter)
			response.TooManyRequests(c, "Too many requests, please slow down.")
			return
		}

		c.Next()
	}
}

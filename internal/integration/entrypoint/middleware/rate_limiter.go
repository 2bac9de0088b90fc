package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/ddduartediego/dimdim-backend/internal/domain/error"
	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/dto"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 1 * time.Minute
)

// RateLimiter limits request rates per client IP using a fixed window
// counter stored in Redis, so limits hold across multiple API instances.
type RateLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
	keyPrefix   string
}

// NewRateLimiter creates a rate limiter with the default limits.
func NewRateLimiter(client *redis.Client, keyPrefix string) *RateLimiter {
	return &RateLimiter{
		client:      client,
		maxAttempts: defaultMaxAttempts,
		window:      defaultWindow,
		keyPrefix:   keyPrefix,
	}
}

// NewRateLimiterWithConfig creates a rate limiter with custom limits.
func NewRateLimiterWithConfig(client *redis.Client, keyPrefix string, maxAttempts int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
		keyPrefix:   keyPrefix,
	}
}

// Middleware returns a Gin handler that rejects requests over the limit
// with 429. Redis failures let the request through rather than blocking
// logins on an unavailable limiter.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip rate limiting in test environments
		if os.Getenv("E2E_MODE") == "true" || os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%s", rl.keyPrefix, c.ClientIP())

		count, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		if count == 1 {
			if err := rl.client.Expire(ctx, key, rl.window).Err(); err != nil {
				slog.Warn("failed to set rate limit window", "error", err)
			}
		}

		if count > int64(rl.maxAttempts) {
			ttl, _ := rl.client.TTL(ctx, key).Result()
			if ttl > 0 {
				c.Header("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))
			}
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many attempts. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

package http

import (
	"strconv"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

// RateLimiter throttles a route per client IP using a Redis backed GCRA.
// It fails open when Redis is missing or unreachable.
type RateLimiter struct {
	limiter *redis_rate.Limiter
	limit   redis_rate.Limit
	prefix  string
	logger  *zap.Logger
}

// NewRateLimiter allows perMinute requests per IP. A nil client or a
// non-positive limit disables limiting.
func NewRateLimiter(client *redis.Client, prefix string, perMinute int, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{prefix: prefix, logger: logger}
	if client != nil && perMinute > 0 {
		rl.limiter = redis_rate.NewLimiter(client)
		rl.limit = redis_rate.PerMinute(perMinute)
	}
	return rl
}

// Handler is the fiber middleware.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl == nil || rl.limiter == nil {
			return c.Next()
		}
		key := "ratelimit:" + rl.prefix + ":ip:" + c.IP()
		res, err := rl.limiter.Allow(c.UserContext(), key, rl.limit)
		if err != nil {
			rl.logger.Warn("rate limiter error, failing open", zap.Error(err), zap.String("key", key))
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.limit.Rate))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))
		if res.Allowed == 0 {
			retryAfter := int(res.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return apperrors.NewTooManyRequests("too many login attempts")
		}
		return c.Next()
	}
}

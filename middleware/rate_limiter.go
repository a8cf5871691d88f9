package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiterConfig defines the window rule for one endpoint group.
type RateLimiterConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	KeyPrefix         string
}

// RateLimiter decides whether one more request fits in the window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, cfg RateLimiterConfig) (allowed bool, remaining int, err error)
}

type redisRateLimiter struct {
	rdb *redis.Client
}

func NewRedisRateLimiter(rdb *redis.Client) RateLimiter {
	return &redisRateLimiter{rdb: rdb}
}

// Fixed window counter. The Lua script keeps check-and-increment atomic so
// concurrent requests cannot sneak past the limit.
const fixedWindowScript = `
local key = KEYS[1]
local expiry = ARGV[1]
local limit = tonumber(ARGV[2])

local current = redis.call('GET', key)

if current == false then
	redis.call('SET', key, 1, 'EX', expiry)
	return {1, limit - 1}
else
	local count = tonumber(current)
	if count >= limit then
		return {count, 0}
	end

	local new_count = redis.call('INCR', key)
	return {new_count, limit - new_count}
end
`

func (l *redisRateLimiter) Allow(ctx context.Context, key string, cfg RateLimiterConfig) (bool, int, error) {
	redisKey := fmt.Sprintf("%s:%s", cfg.KeyPrefix, key)

	result, err := l.rdb.Eval(ctx, fixedWindowScript, []string{redisKey},
		int(cfg.Window.Seconds()), cfg.RequestsPerWindow).Result()
	if err != nil {
		return false, 0, err
	}

	results := result.([]interface{})
	current := results[0].(int64)
	remaining := results[1].(int64)

	return current <= int64(cfg.RequestsPerWindow), int(remaining), nil
}

// EndpointRateLimitMiddleware throttles by client IP per endpoint group.
// Redis failures do not block requests.
func EndpointRateLimitMiddleware(limiter RateLimiter, cfg RateLimiterConfig, endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:ip:%s", endpoint, c.ClientIP())

		allowed, remaining, err := limiter.Allow(c.Request.Context(), key, cfg)
		if err != nil {
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.RequestsPerWindow))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(cfg.Window).Unix()))

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many requests, please try again in %v", cfg.Window),
				"code":        "RATE_LIMIT_EXCEEDED",
				"retry_after": int(cfg.Window.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

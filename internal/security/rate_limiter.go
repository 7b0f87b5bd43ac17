package security

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DefaultRateLimit    = 30
	DefaultRateInterval = time.Minute
)

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// RateLimiter is a Redis-backed sliding-window limiter keyed by client
// IP and path. Screening endpoints sit in front of an expensive model
// call, so they get a tighter limit than the rest of the API.
type RateLimiter struct {
	redis    *redis.Client
	limit    int
	interval time.Duration
}

func NewRateLimiter(client *redis.Client, limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if interval <= 0 {
		interval = DefaultRateInterval
	}
	return &RateLimiter{
		redis:    client,
		limit:    limit,
		interval: interval,
	}
}

// GinMiddleware enforces the limit and sets the X-RateLimit headers.
func (rl *RateLimiter) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		count, err := rl.check(c.Request.Context(), c.ClientIP(), c.Request.URL.Path)
		if err != nil {
			if errors.Is(err, ErrRateLimitExceeded) {
				c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
				c.Header("X-RateLimit-Remaining", "0")
				c.Header("Retry-After", strconv.Itoa(int(rl.interval.Seconds())))
				c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
				c.Abort()
				return
			}
			log.Error().Err(err).Msg("rate limiting error")
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(rl.limit-count))
		c.Next()
	}
}

// check counts requests in the sliding window and records this one.
// Redis trouble fails open; screening still works without the limiter.
func (rl *RateLimiter) check(ctx context.Context, ip, path string) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, path)
	now := time.Now().UnixNano()
	windowStart := now - rl.interval.Nanoseconds()

	if err := rl.redis.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10)).Err(); err != nil {
		log.Error().Err(err).Msg("failed to trim rate limit window")
		return 0, nil
	}

	count, err := rl.redis.ZCard(ctx, key).Result()
	if err != nil {
		log.Error().Err(err).Msg("failed to count rate limit entries")
		return 0, nil
	}
	if count >= int64(rl.limit) {
		return int(count), ErrRateLimitExceeded
	}

	if err := rl.redis.ZAdd(ctx, key, redis.Z{
		Score:  float64(now),
		Member: now,
	}).Err(); err != nil {
		log.Error().Err(err).Msg("failed to record rate limit entry")
	}
	if err := rl.redis.Expire(ctx, key, rl.interval+time.Minute).Err(); err != nil {
		log.Error().Err(err).Msg("failed to expire rate limit key")
	}

	return int(count) + 1, nil
}

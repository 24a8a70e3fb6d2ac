package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"skilltrack/internal/config"
)

// redisTokenBucketScript runs the token bucket atomically in Redis.
// KEYS[1] = bucket key
// ARGV[1] = refill rate (tokens per second)
// ARGV[2] = capacity (max tokens)
// ARGV[3] = current unix time in seconds, fractional
// ARGV[4] = bucket ttl in seconds
var redisTokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local state = redis.call("HMGET", key, "tokens", "last_refill")
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if not tokens or not last_refill then
    tokens = capacity
    last_refill = now
end

local elapsed = now - last_refill
if elapsed > 0 then
    tokens = math.min(capacity, tokens + elapsed * rate)
    last_refill = now
end

local allowed = 0
if tokens >= 1 then
    tokens = tokens - 1
    allowed = 1
end

redis.call("HSET", key, "tokens", tostring(tokens), "last_refill", tostring(last_refill))
redis.call("EXPIRE", key, ttl)

return allowed
`)

// RedisLimiter shares token buckets between instances through Redis
type RedisLimiter struct {
	client   redis.UniversalClient
	capacity int
	rate     float64
	ttl      int
	now      func() time.Time
}

// NewRedisLimiter creates a limiter allowing cfg.Requests per cfg.Duration
func NewRedisLimiter(client redis.UniversalClient, cfg *config.RateLimitConfig) *RedisLimiter {
	ttl := int(cfg.Duration.Seconds())
	if ttl < 1 {
		ttl = 1
	}
	return &RedisLimiter{
		client:   client,
		capacity: cfg.Requests,
		rate:     float64(cfg.Requests) / cfg.Duration.Seconds(),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Allow consumes one token from the bucket of key
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := float64(l.now().UnixMicro()) / 1e6
	res, err := redisTokenBucketScript.Run(ctx, l.client,
		[]string{"skilltrack:ratelimit:" + key},
		l.rate, l.capacity, now, l.ttl,
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis rate limit: %w", err)
	}
	return res == 1, nil
}

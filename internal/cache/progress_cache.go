// Package cache stores computed category progress in Redis. Entries are
// whole results, dropped for a user on every rating write.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"skilltrack/internal/config"
	"skilltrack/internal/progression"
)

// setIfCurrentScript writes a result only if the user's generation did not
// move since the caller read it, so a slow computation cannot overwrite an
// invalidation that happened while it ran.
// KEYS[1] = progress hash, KEYS[2] = generation key
// ARGV[1] = generation seen by the caller, ARGV[2] = category field,
// ARGV[3] = encoded progress, ARGV[4] = ttl in seconds
var setIfCurrentScript = redis.NewScript(`
local current = redis.call("GET", KEYS[2])
if not current then
    current = "0"
end
if current ~= ARGV[1] then
    return 0
end
redis.call("HSET", KEYS[1], ARGV[2], ARGV[3])
redis.call("EXPIRE", KEYS[1], tonumber(ARGV[4]))
return 1
`)

// ProgressCache caches progress per user and category.
type ProgressCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewClient creates a Redis client from configuration
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewProgressCache wraps client. A non-positive ttl defaults to ten minutes.
func NewProgressCache(client redis.UniversalClient, ttl time.Duration) *ProgressCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ProgressCache{client: client, ttl: ttl}
}

func progressKey(userID uint) string   { return fmt.Sprintf("skilltrack:progress:%d", userID) }
func generationKey(userID uint) string { return fmt.Sprintf("skilltrack:progress:%d:gen", userID) }

// Generation returns the user's current cache generation
func (c *ProgressCache) Generation(ctx context.Context, userID uint) (string, error) {
	gen, err := c.client.Get(ctx, generationKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get generation: %w", err)
	}
	return gen, nil
}

// Get returns a cached result and whether one was found
func (c *ProgressCache) Get(ctx context.Context, userID, categoryID uint) (*progression.Progress, bool, error) {
	raw, err := c.client.HGet(ctx, progressKey(userID), strconv.FormatUint(uint64(categoryID), 10)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get progress: %w", err)
	}

	var p progression.Progress
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false, fmt.Errorf("decode cached progress: %w", err)
	}
	return &p, true, nil
}

// Set stores p unless the user's data changed after generation was read.
// It reports whether the value was written.
func (c *ProgressCache) Set(ctx context.Context, userID uint, generation string, p progression.Progress) (bool, error) {
	encoded, err := json.Marshal(p)
	if err != nil {
		return false, err
	}

	res, err := setIfCurrentScript.Run(ctx, c.client,
		[]string{progressKey(userID), generationKey(userID)},
		generation, strconv.FormatUint(uint64(p.CategoryID), 10), encoded, int(c.ttl.Seconds()),
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis set progress: %w", err)
	}
	return res == 1, nil
}

// InvalidateUser drops every cached result of a user and bumps the generation
func (c *ProgressCache) InvalidateUser(ctx context.Context, userID uint) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(userID))
		pipe.Del(ctx, progressKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate progress: %w", err)
	}
	return nil
}

// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moneybook/backend/internal/application/adapter"
)

// redisStatsCache implements adapter.StatsCache on a Redis client.
// Values are stored as JSON under "stats:<user>:<op>:<range>" keys so a
// user's whole namespace can be dropped with one SCAN+DEL pass.
type redisStatsCache struct {
	client *redis.Client
}

// NewRedisStatsCache creates a new Redis-backed statistics cache.
func NewRedisStatsCache(client *redis.Client) adapter.StatsCache {
	return &redisStatsCache{
		client: client,
	}
}

// Get retrieves a cached value. Returns (false, nil) on a miss.
func (c *redisStatsCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("cache get: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

// Set stores a value under key with the given TTL.
func (c *redisStatsCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// InvalidateUser removes every cached statistics entry for the user.
func (c *redisStatsCache) InvalidateUser(ctx context.Context, userID string) error {
	pattern := fmt.Sprintf("stats:%s:*", userID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// NoopStatsCache is a cache that never hits, for deployments without Redis.
type NoopStatsCache struct{}

// Get always misses.
func (NoopStatsCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	return false, nil
}

// Set discards the value.
func (NoopStatsCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

// InvalidateUser does nothing.
func (NoopStatsCache) InvalidateUser(ctx context.Context, userID string) error {
	return nil
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.StatsCache = (*redisStatsCache)(nil)
	_ adapter.StatsCache = NoopStatsCache{}
)

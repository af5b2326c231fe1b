// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// StatsCache defines the interface for caching computed statistics payloads.
// Implementations store serialized values under namespaced keys with a TTL.
type StatsCache interface {
	// Get retrieves a cached value and unmarshals it into dest. Returns
	// (false, nil) on a cache miss.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// InvalidateUser removes all cached statistics for a user.
	InvalidateUser(ctx context.Context, userID string) error
}

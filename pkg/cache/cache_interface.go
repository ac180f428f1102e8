package cache

import (
	"context"
	"time"
)

// Cache is the contract for the response cache layer. Implementations are
// swappable (Redis in production, fakes in tests); values are stored as
// JSON.
type Cache interface {
	// Get fetches a key and unmarshals it into dest.
	// found == false means a cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}

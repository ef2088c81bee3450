package port

import (
	"context"
	"time"
)

// Cache is the minimal key-value contract consumed by the application.
// Implementations must be safe for concurrent use. Values are plain strings;
// callers own serialization.
type Cache interface {
	// Get fetches the value for key. Misses are reported as ErrMiss so callers
	// can tell them apart from transport errors.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key. Zero or negative TTL means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes the given keys and returns how many were removed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Ping verifies connectivity with the backend.
	Ping(ctx context.Context) error

	// Close releases resources held by the cache.
	Close() error
}

// ErrMiss signals a cache miss in a typed way.
var ErrMiss = errMiss{}

type errMiss struct{}

func (errMiss) Error() string { return "cache: miss" }

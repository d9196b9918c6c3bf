// Package cache provides pluggable caching of Mutalyzer API responses.
//
// Three backends are available:
//   - [FileCache]: per-user cache directory, used by the CLI
//   - [RedisCache]: shared cache, used by the serve mode
//   - [NullCache]: no-op cache for tests and --no-cache runs
//
// All backends store opaque byte slices; callers are responsible for
// serialization. Keys may contain any characters; backends that need
// safe names hash the key first.
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A TTL of 0 means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Package cache stores GitHub tag listings between bumpkit runs.
//
// Listing every tag of a large repository costs one request per hundred
// tags, and the link fixer asks for the same repositories again on each
// run. A [Cache] keeps the raw listing for a configurable TTL so repeated
// runs over the benchmark reuse it.
//
// Two backends are available:
//
//   - [FileCache]: one JSON file per entry under ~/.cache/bumpkit
//   - [RedisCache]: a shared Redis instance, selected with BUMPKIT_REDIS_URL
//
// [NullCache] disables persistence (the `--no-cache` flag).
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry written by bumpkit.
	Clear(ctx context.Context) error

	// Close releases the backend's resources.
	Close() error
}

// Package cache stores computed layouts and rendered artifacts.
//
// Entries are opaque byte slices addressed by string keys. A [Keyer] derives
// those keys from content hashes and the options that influence the result,
// so a changed tree or a changed option never hits a stale entry.
//
// Three backends are provided:
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for `treemap serve`
//
// Backends that can drop all of their entries at once also implement
// [Clearer].
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is reported
	// as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can remove every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

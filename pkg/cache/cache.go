// Package cache provides pluggable storage backends and key generation for
// the generate→fit→render pipeline.
//
// Every pipeline stage is content-addressed: the cache key of a stage
// output hashes the inputs that produced it, so identical requests hit the
// cache and any parameter change misses it naturally. Three backends cover
// the deployment modes:
//
//   - [FileCache]: per-user on-disk cache for CLI usage
//   - [RedisCache]: shared cache for serve mode
//   - [NullCache]: disables caching entirely
//
// Key construction lives in [Keyer] so the layering of keys (figure hash →
// scene key → artifact key) stays in one place. [ScopedKeyer] prefixes all
// keys for namespace isolation when several instances share one Redis.
package cache

import (
	"context"
	"time"
)

// Stage TTLs. Keys are content-addressed and never go stale; expiry only
// bounds disk and Redis growth. Artifacts are the bulkiest and cheapest to
// recreate, so they expire first.
const (
	TTLFigure   = 7 * 24 * time.Hour
	TTLScene    = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
	TTLMeasure  = 30 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
//
// Get reports a miss with a false second return and no error; errors are
// reserved for backend failures. Set with a zero ttl stores the entry
// without expiration, which suits content-addressed keys that can never go
// stale.
type Cache interface {
	// Get retrieves the value for key. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key with an optional TTL (0 = no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes the entry for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// NullCache drops every write and misses every read. It stands in
// wherever caching is switched off, so callers never branch on nil.
type NullCache struct{}

// NewNullCache creates a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}

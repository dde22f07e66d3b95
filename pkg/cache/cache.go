// Package cache provides caching for extracted network descriptions.
//
// Caching sits between snapshot loading and description export: extracting
// a description is cheap, but the CLI and API both re-run conversions of
// identical snapshots often enough that keying results by snapshot hash
// avoids redundant work and keeps API responses fast.
//
// Two backends are provided:
//   - FileCache: directory-based cache for CLI usage
//   - RedisCache: Redis-backed cache for server deployments
//
// NullCache disables caching entirely (for tests or --no-cache).
package cache

import (
	"context"
	"time"
)

// TTLs for the different cached artifact types. Descriptions are
// deterministic functions of their snapshot, so they can live long.
const (
	TTLSnapshot    = 24 * time.Hour
	TTLDescription = 7 * 24 * time.Hour
)

// Cache is the interface for cache backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of zero means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// DescriptionKeyOpts captures the options that affect extraction output.
// Two extractions with the same snapshot but different options must not
// share a cache entry.
type DescriptionKeyOpts struct {
	Weights bool // include weight statistics in synapse tags
	Params  bool // include initial parameter maps
}

// Keyer generates cache keys for the different cached artifact types.
type Keyer interface {
	// SnapshotKey generates a key for a raw snapshot file by content hash.
	SnapshotKey(contentHash string) string

	// DescriptionKey generates a key for an extracted description.
	DescriptionKey(snapshotHash string, opts DescriptionKeyOpts) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SnapshotKey generates a key for a raw snapshot by content hash.
func (k *DefaultKeyer) SnapshotKey(contentHash string) string {
	return "snapshot:" + contentHash
}

// DescriptionKey generates a key for an extracted description.
// The options are hashed into the key so variants are cached separately.
func (k *DefaultKeyer) DescriptionKey(snapshotHash string, opts DescriptionKeyOpts) string {
	return "description:" + descriptionDigest(snapshotHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful in server deployments where different users or projects
// need separate cache namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SnapshotKey generates a prefixed snapshot key.
func (k *ScopedKeyer) SnapshotKey(contentHash string) string {
	return k.prefix + k.inner.SnapshotKey(contentHash)
}

// DescriptionKey generates a prefixed description key.
func (k *ScopedKeyer) DescriptionKey(snapshotHash string, opts DescriptionKeyOpts) string {
	return k.prefix + k.inner.DescriptionKey(snapshotHash, opts)
}

// Package cache stores loaded charts and rendered artifacts between runs.
//
// A [Cache] is a plain byte store with per-entry TTLs. Three backends are
// provided: [FileCache] for the CLI, [RedisCache] for the HTTP server when
// several instances share work, and [NullCache] when caching is disabled.
//
// Keys come from a [Keyer] so that every caller derives the same key for the
// same source document and options:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ChartKey(cache.Hash(src), cache.ChartKeyOpts{Loader: "svg", Purl: "#383838"})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    // decode data
//	}
package cache

import (
	"context"
	"time"
)

// Default lifetimes for cached entries.
const (
	// TTLChart is how long a decoded chart stays cached. Charts are keyed by
	// a hash of their source bytes, so they never go stale.
	TTLChart = 30 * 24 * time.Hour

	// TTLArtifact is how long rendered instructions stay cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key/value byte store.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

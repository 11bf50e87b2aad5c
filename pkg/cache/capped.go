package cache

import (
	"context"
	"time"
)

// cappedCache clamps entry lifetimes to a configured maximum.
type cappedCache struct {
	Cache
	max time.Duration
}

// WithMaxTTL wraps c so that no entry outlives max. A non-positive max
// returns c unchanged.
func WithMaxTTL(c Cache, max time.Duration) Cache {
	if max <= 0 {
		return c
	}
	return &cappedCache{Cache: c, max: max}
}

// Set stores the entry with ttl clamped to the maximum.
func (c *cappedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 || ttl > c.max {
		ttl = c.max
	}
	return c.Cache.Set(ctx, key, data, ttl)
}

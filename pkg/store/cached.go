package store

import (
	"context"

	"github.com/mirkobrombin/go-warp/v1/cache"
)

// Cached is a Store on top of a go-warp in-memory cache. It is bounded:
// once maxEntries is reached older entries are evicted, so a key that was
// set can later read as absent. Use it as a cache tier, not as the system
// of record.
type Cached[V any] struct {
	cache cache.Cache[V]
}

// NewCached returns a Cached store holding at most maxEntries values.
func NewCached[V any](maxEntries int) *Cached[V] {
	return &Cached[V]{
		cache: cache.NewInMemory[V](cache.WithMaxEntries[V](maxEntries)),
	}
}

func (c *Cached[V]) Get(ctx context.Context, key string) (V, bool, error) {
	return c.cache.Get(ctx, key)
}

// Set stores value without expiry.
func (c *Cached[V]) Set(ctx context.Context, key string, value V) error {
	return c.cache.Set(ctx, key, value, 0)
}

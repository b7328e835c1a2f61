// ABOUTME: In-memory cache implementation backed by patrickmn/go-cache
// ABOUTME: Provides TTL support with periodic cleanup of expired entries

package memory

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ErrCacheMiss is returned when a key is not present.
var ErrCacheMiss = errors.New("cache: key not found")

// MemoryCache implements the Cache interface using an in-process store.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates an in-memory cache. Expired entries are purged at
// twice the default expiration interval.
func NewMemoryCache(defaultExpiration time.Duration) *MemoryCache {
	if defaultExpiration <= 0 {
		defaultExpiration = time.Hour
	}
	return &MemoryCache{
		cache: gocache.New(defaultExpiration, 2*defaultExpiration),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	value, found := c.cache.Get(key)
	if !found {
		return nil, ErrCacheMiss
	}
	data, ok := value.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}
	// Return a copy so callers cannot mutate the cached slice.
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Set stores a value with the given TTL. A zero TTL uses the cache's
// default expiration.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	if ttl == 0 {
		c.cache.SetDefault(key, stored)
		return nil
	}
	c.cache.Set(key, stored, ttl)
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.cache.Delete(key)
	return nil
}

// ABOUTME: In-memory cache implementation backed by go-cache
// ABOUTME: Honors the cache-miss contract and respects context cancellation

package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	coreerrors "serp-insights-api/core/errors"
	"serp-insights-api/pkg/config"
)

// MemoryCache implements the Cache interface using an in-process store with
// TTL support and periodic cleanup of expired entries.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates an in-memory cache. Non-positive config values fall
// back to a day of expiration and ten-minute cleanup.
func NewMemoryCache(cfg config.MemoryConfig) *MemoryCache {
	expiration := time.Duration(cfg.DefaultExpiration) * time.Second
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	cleanup := time.Duration(cfg.CleanupInterval) * time.Second
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}

	return &MemoryCache{store: gocache.New(expiration, cleanup)}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	value, ok := c.store.Get(key)
	if !ok {
		return nil, coreerrors.ErrCacheMiss
	}

	stored := value.([]byte)
	result := make([]byte, len(stored))
	copy(result, stored)
	return result, nil
}

// Set stores a value in the cache with the given TTL. A zero TTL stores the
// value without expiration.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	if ttl == 0 {
		c.store.Set(key, valueCopy, gocache.NoExpiration)
		return nil
	}
	c.store.Set(key, valueCopy, ttl)
	return nil
}

// Delete removes a key from the cache. Deleting an absent key is not an error.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	c.store.Delete(key)
	return nil
}

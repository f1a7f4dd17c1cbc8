// Package interfaces defines the contracts the core analysis logic depends on.
// These interfaces allow for dependency injection and make the pipeline testable.
package interfaces

import (
	"context"
	"time"
)

// Cache defines the interface for cache operations.
// Implementations can be Redis, in-memory, or any other keyed store with TTL.
//
// Implementations return coreerrors.ErrCacheMiss when a key is absent and a
// *coreerrors.CacheError for backend failures, so callers can tell a miss
// from a broken cache.
type Cache interface {
	// Get retrieves the value stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given TTL.
	// A ttl of 0 stores the value without expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the value stored under key.
	// Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

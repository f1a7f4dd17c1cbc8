// ABOUTME: Redis cache implementation using go-redis client
// ABOUTME: Maps redis.Nil onto the cache-miss contract and wraps backend failures

package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	coreerrors "serp-insights-api/core/errors"
	"serp-insights-api/pkg/config"
)

// RedisCache implements the Cache interface using Redis
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache instance and verifies the
// connection with a ping.
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, &coreerrors.CacheError{Op: "ping", Key: cfg.Address, Err: err}
	}

	return &RedisCache{client: client}, nil
}

// Get retrieves a value from Redis
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, coreerrors.ErrCacheMiss
		}
		return nil, &coreerrors.CacheError{Op: "get", Key: key, Err: err}
	}

	return val, nil
}

// Set stores a value in Redis with the given TTL. A zero TTL stores the
// value without expiration.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return &coreerrors.CacheError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Delete removes a key from Redis. Deleting an absent key is not an error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return &coreerrors.CacheError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

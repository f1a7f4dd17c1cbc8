// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for cache, provider and pipeline tuning

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Cache contains cache backend configuration
	Cache CacheConfig

	// Provider contains results-provider configuration
	Provider ProviderConfig

	// Pipeline contains analysis pipeline tuning
	Pipeline PipelineConfig
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int

	// CleanupInterval is how often expired entries are purged, in seconds
	CleanupInterval int
}

// ProviderConfig holds results-provider configuration
type ProviderConfig struct {
	// Kind selects the provider implementation (serpapi/scrape)
	Kind string

	// APIKey authenticates against the JSON results API
	APIKey string

	// BaseURL is the provider endpoint
	BaseURL string

	// TimeoutSeconds bounds a single provider request
	TimeoutSeconds int

	// RequestsPerSecond rate-limits outgoing provider calls
	RequestsPerSecond float64

	// Burst is the rate limiter burst size
	Burst int
}

// PipelineConfig holds analysis pipeline tuning
type PipelineConfig struct {
	// ResultTTLSeconds is the cache TTL for full analysis results
	ResultTTLSeconds int

	// SerpTTLSeconds is the cache TTL for raw results pages
	SerpTTLSeconds int

	// RetryBaseDelayMS is the first backoff delay for transient provider errors
	RetryBaseDelayMS int

	// RetryMaxAttempts caps provider attempts per run
	RetryMaxAttempts int

	// IntentEpsilon is the tie-break window between intent strategies
	IntentEpsilon float64

	// SimilarityThreshold is the high-overlap threshold for gap detection
	SimilarityThreshold float64

	// RunDeadlineSeconds bounds one whole pipeline run
	RunDeadlineSeconds int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 86400),
				CleanupInterval:   getEnvAsIntOrDefault("MEMORY_CACHE_CLEANUP", 600),
			},
		},
		Provider: ProviderConfig{
			Kind:              getEnvOrDefault("PROVIDER_KIND", "serpapi"),
			APIKey:            getEnvOrDefault("PROVIDER_API_KEY", ""),
			BaseURL:           getEnvOrDefault("PROVIDER_BASE_URL", "https://serpapi.example.com/search"),
			TimeoutSeconds:    getEnvAsIntOrDefault("PROVIDER_TIMEOUT", 10),
			RequestsPerSecond: getEnvAsFloatOrDefault("PROVIDER_RPS", 5),
			Burst:             getEnvAsIntOrDefault("PROVIDER_BURST", 5),
		},
		Pipeline: PipelineConfig{
			ResultTTLSeconds:    getEnvAsIntOrDefault("PIPELINE_RESULT_TTL", 86400),
			SerpTTLSeconds:      getEnvAsIntOrDefault("PIPELINE_SERP_TTL", 86400),
			RetryBaseDelayMS:    getEnvAsIntOrDefault("PIPELINE_RETRY_BASE_DELAY_MS", 200),
			RetryMaxAttempts:    getEnvAsIntOrDefault("PIPELINE_RETRY_MAX_ATTEMPTS", 3),
			IntentEpsilon:       getEnvAsFloatOrDefault("PIPELINE_INTENT_EPSILON", 0.02),
			SimilarityThreshold: getEnvAsFloatOrDefault("PIPELINE_SIMILARITY_THRESHOLD", 0.6),
			RunDeadlineSeconds:  getEnvAsIntOrDefault("PIPELINE_RUN_DEADLINE", 30),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Provider.Kind != "serpapi" && c.Provider.Kind != "scrape" {
		return errors.New("provider kind must be 'serpapi' or 'scrape'")
	}

	if c.Provider.BaseURL == "" {
		return errors.New("provider base URL cannot be empty")
	}

	if c.Pipeline.RetryMaxAttempts < 1 {
		return errors.New("retry max attempts must be at least 1")
	}

	if c.Pipeline.IntentEpsilon < 0 || c.Pipeline.IntentEpsilon >= 1 {
		return errors.New("intent epsilon must be in [0, 1)")
	}

	if c.Pipeline.SimilarityThreshold <= 0 || c.Pipeline.SimilarityThreshold > 1 {
		return errors.New("similarity threshold must be in (0, 1]")
	}

	if c.Pipeline.RunDeadlineSeconds < 1 {
		return errors.New("run deadline must be at least 1 second")
	}

	return nil
}

package config

import (
	"os"
	"testing"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadFromEnv()

	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if cfg.Cache.Type != "memory" {
		t.Errorf("default cache type = %q, want memory", cfg.Cache.Type)
	}
	if cfg.Provider.Kind != "serpapi" {
		t.Errorf("default provider kind = %q, want serpapi", cfg.Provider.Kind)
	}
	if cfg.Pipeline.ResultTTLSeconds != 86400 {
		t.Errorf("default result TTL = %d, want 86400", cfg.Pipeline.ResultTTLSeconds)
	}
	if cfg.Pipeline.IntentEpsilon != 0.02 {
		t.Errorf("default intent epsilon = %v, want 0.02", cfg.Pipeline.IntentEpsilon)
	}
	if cfg.Pipeline.RetryMaxAttempts != 3 {
		t.Errorf("default retry attempts = %d, want 3", cfg.Pipeline.RetryMaxAttempts)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	os.Clearenv()
	os.Setenv("CACHE_TYPE", "redis")
	os.Setenv("REDIS_ADDRESS", "redis:6379")
	os.Setenv("PIPELINE_INTENT_EPSILON", "0.05")
	defer os.Clearenv()

	cfg, err := LoadFromEnv()

	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}
	if cfg.Cache.Type != "redis" {
		t.Errorf("cache type = %q, want redis", cfg.Cache.Type)
	}
	if cfg.Cache.Redis.Address != "redis:6379" {
		t.Errorf("redis address = %q, want redis:6379", cfg.Cache.Redis.Address)
	}
	if cfg.Pipeline.IntentEpsilon != 0.05 {
		t.Errorf("intent epsilon = %v, want 0.05", cfg.Pipeline.IntentEpsilon)
	}
}

func TestValidate_ValidDefaults(t *testing.T) {
	os.Clearenv()
	cfg, _ := LoadFromEnv()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate returned error for defaults: %v", err)
	}
}

func TestValidate_BadCacheType(t *testing.T) {
	os.Clearenv()
	cfg, _ := LoadFromEnv()
	cfg.Cache.Type = "memcached"

	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject unknown cache type")
	}
}

func TestValidate_BadProviderKind(t *testing.T) {
	os.Clearenv()
	cfg, _ := LoadFromEnv()
	cfg.Provider.Kind = "bing"

	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject unknown provider kind")
	}
}

func TestValidate_EpsilonOutOfRange(t *testing.T) {
	os.Clearenv()
	cfg, _ := LoadFromEnv()
	cfg.Pipeline.IntentEpsilon = 1.5

	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject epsilon >= 1")
	}
}

func TestValidate_ZeroRetryAttempts(t *testing.T) {
	os.Clearenv()
	cfg, _ := LoadFromEnv()
	cfg.Pipeline.RetryMaxAttempts = 0

	if err := cfg.Validate(); err == nil {
		t.Error("Validate should reject zero retry attempts")
	}
}

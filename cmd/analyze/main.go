// ABOUTME: Main entry point for the analysis CLI
// ABOUTME: Wires configuration, cache, provider and pipeline, then analyzes a term

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"serp-insights-api/core/domain"
	"serp-insights-api/core/interfaces"
	"serp-insights-api/core/pipeline"
	"serp-insights-api/infrastructure/cache/memory"
	"serp-insights-api/infrastructure/cache/redis"
	stdhttp "serp-insights-api/infrastructure/http/standard"
	logruslogger "serp-insights-api/infrastructure/logger/logrus"
	"serp-insights-api/infrastructure/provider/scrape"
	"serp-insights-api/infrastructure/provider/serpapi"
	"serp-insights-api/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: analyze <search term> [max results]")
		os.Exit(2)
	}

	args := os.Args[1:]
	maxResults := 0
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[len(args)-1]); err == nil {
			maxResults = n
			args = args[:len(args)-1]
		}
	}
	term := strings.Join(args, " ")

	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logruslogger.NewLogrusLogger(os.Getenv("LOG_LEVEL"))
	logger.Info("Starting analysis", map[string]interface{}{
		"term":       term,
		"cache_type": cfg.Cache.Type,
		"provider":   cfg.Provider.Kind,
	})

	cache := buildCache(cfg, logger)
	httpClient := stdhttp.NewStandardHTTPClient(time.Duration(cfg.Provider.TimeoutSeconds) * time.Second)

	provider, err := buildProvider(cfg, httpClient, logger)
	if err != nil {
		log.Fatalf("Failed to create provider: %v", err)
	}

	deps := interfaces.Dependencies{
		Cache:      cache,
		Provider:   provider,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	p := pipeline.New(deps, pipeline.Options{
		Epsilon:             cfg.Pipeline.IntentEpsilon,
		SimilarityThreshold: cfg.Pipeline.SimilarityThreshold,
		RetryBaseDelay:      time.Duration(cfg.Pipeline.RetryBaseDelayMS) * time.Millisecond,
		RetryMaxAttempts:    cfg.Pipeline.RetryMaxAttempts,
		ResultsTTL:          time.Duration(cfg.Pipeline.SerpTTLSeconds) * time.Second,
		AnalysisTTL:         time.Duration(cfg.Pipeline.ResultTTLSeconds) * time.Second,
		RunDeadline:         time.Duration(cfg.Pipeline.RunDeadlineSeconds) * time.Second,
	})

	result, err := p.Run(context.Background(), domain.SearchTerm{Text: term, MaxResults: maxResults})
	if err != nil {
		logger.Error("Analysis failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
}

// buildCache selects the cache backend, falling back to memory when Redis
// is unreachable.
func buildCache(cfg *config.Config, logger interfaces.Logger) interfaces.Cache {
	if cfg.Cache.Type == "redis" {
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err == nil {
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
			return redisCache
		}
		logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Using memory cache", nil)
	return memory.NewMemoryCache(cfg.Cache.Memory)
}

func buildProvider(cfg *config.Config, httpClient interfaces.HTTPClient, logger interfaces.Logger) (interfaces.ResultsProvider, error) {
	switch cfg.Provider.Kind {
	case "scrape":
		return scrape.NewProvider(cfg.Provider, httpClient, logger)
	default:
		return serpapi.NewProvider(cfg.Provider, httpClient, logger)
	}
}

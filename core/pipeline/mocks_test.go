// ABOUTME: Test doubles for pipeline tests
// ABOUTME: Func-field mocks for the cache and provider plus a silent logger

package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"serp-insights-api/core/domain"
	coreerrors "serp-insights-api/core/errors"
)

type mockLogger struct{}

func (mockLogger) Debug(string, map[string]interface{}) {}
func (mockLogger) Info(string, map[string]interface{})  {}
func (mockLogger) Warn(string, map[string]interface{})  {}
func (mockLogger) Error(string, map[string]interface{}) {}

// mockCache is an in-memory cache honoring the miss contract. Optional
// func fields override individual operations.
type mockCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	getFunc func(ctx context.Context, key string) ([]byte, error)
	setFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (c *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.getFunc != nil {
		return c.getFunc(ctx, key)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, coreerrors.ErrCacheMiss
	}
	return v, nil
}

func (c *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.setFunc != nil {
		return c.setFunc(ctx, key, value, ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mockCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// mockProvider counts fetches and delegates to fetchFunc.
type mockProvider struct {
	calls     int32
	fetchFunc func(ctx context.Context, term string, maxResults int) (domain.ResultsPage, error)
}

func (p *mockProvider) Fetch(ctx context.Context, term string, maxResults int) (domain.ResultsPage, error) {
	atomic.AddInt32(&p.calls, 1)
	return p.fetchFunc(ctx, term, maxResults)
}

func (p *mockProvider) callCount() int {
	return int(atomic.LoadInt32(&p.calls))
}

// transactionalPage builds a marketplace-heavy results page.
func transactionalPage() domain.ResultsPage {
	return domain.ResultsPage{
		Entries: []domain.ResultEntry{
			{Rank: 1, Domain: "amazon.com", URL: "https://amazon.com/1", Title: "Buy Funny Dad Shirt - $19.99", Description: "Shop funny dad shirts on sale, order today for $19.99"},
			{Rank: 2, Domain: "etsy.com", URL: "https://etsy.com/2", Title: "Funny Dad Shirt Sale", Description: "Purchase handmade funny dad shirts, price from $15.99"},
			{Rank: 3, Domain: "ebay.com", URL: "https://ebay.com/3", Title: "Funny Dad Shirts for Sale", Description: "Buy funny dad shirts, checkout fast"},
			{Rank: 4, Domain: "teepublic.com", URL: "https://teepublic.com/4", Title: "Funny Dad Tees", Description: "Shop the funny dad collection"},
		},
		Metadata: domain.PageMetadata{
			PaidListings: []domain.PaidListing{
				{Title: "Funny Dad Shirt", URL: "https://ads.example.com/1", Price: "$18.99"},
				{Title: "Dad Joke Tee", URL: "https://ads.example.com/2", Price: "$21.50"},
			},
			PaidListingsPosition: 1,
		},
	}
}

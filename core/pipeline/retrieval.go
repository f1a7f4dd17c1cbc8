// ABOUTME: Retrieval stage fetching raw results pages cache-first with retry
// ABOUTME: De-duplicates concurrent fetches for the same term through singleflight

package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/singleflight"

	"serp-insights-api/core/domain"
	coreerrors "serp-insights-api/core/errors"
	"serp-insights-api/core/interfaces"
)

const (
	// resultsKeyPrefix namespaces cached raw results pages.
	resultsKeyPrefix = "serp::"

	// DefaultRetryBaseDelay seeds the exponential backoff between attempts.
	DefaultRetryBaseDelay = 200 * time.Millisecond

	// DefaultMaxAttempts bounds provider calls per fetch, first try included.
	DefaultMaxAttempts = 3

	// DefaultResultsTTL keeps raw results pages for a day.
	DefaultResultsTTL = 24 * time.Hour
)

// RetrievalStage fetches the raw results page for a term. Cache first; on a
// miss it calls the provider with exponential backoff on transient failures
// and writes the page back through. Concurrent fetches for the same term
// share one provider call.
type RetrievalStage struct {
	provider interfaces.ResultsProvider
	cache    interfaces.Cache
	logger   interfaces.Logger

	flight      singleflight.Group
	baseDelay   time.Duration
	maxAttempts int
	ttl         time.Duration
}

// NewRetrievalStage creates the stage. Non-positive tuning values fall back
// to the package defaults.
func NewRetrievalStage(provider interfaces.ResultsProvider, cache interfaces.Cache, logger interfaces.Logger, baseDelay time.Duration, maxAttempts int, ttl time.Duration) *RetrievalStage {
	if baseDelay <= 0 {
		baseDelay = DefaultRetryBaseDelay
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if ttl <= 0 {
		ttl = DefaultResultsTTL
	}
	return &RetrievalStage{
		provider:    provider,
		cache:       cache,
		logger:      logger,
		baseDelay:   baseDelay,
		maxAttempts: maxAttempts,
		ttl:         ttl,
	}
}

func (s *RetrievalStage) Name() string { return "results retrieval" }

// Process expects a validated domain.SearchTerm and returns the
// domain.ResultsPage. The page is also stored in the context.
func (s *RetrievalStage) Process(ctx context.Context, input interface{}, pctx *Context) (interface{}, error) {
	term, ok := input.(domain.SearchTerm)
	if !ok {
		return nil, fmt.Errorf("retrieval stage: unexpected input type %T", input)
	}

	if page, ok := s.cachedPage(ctx, term); ok {
		pctx.Set(ctxKeyPage, page)
		return page, nil
	}

	// Late callers for the same term await the first caller's fetch.
	ch := s.flight.DoChan(term.Text, func() (interface{}, error) {
		return s.fetchWithRetry(ctx, term)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		page := res.Val.(domain.ResultsPage)
		pctx.Set(ctxKeyPage, page)
		return page, nil
	}
}

func (s *RetrievalStage) cachedPage(ctx context.Context, term domain.SearchTerm) (domain.ResultsPage, bool) {
	raw, err := s.cache.Get(ctx, resultsKeyPrefix+term.Text)
	if err != nil {
		if !errors.Is(err, coreerrors.ErrCacheMiss) {
			s.logger.Warn("results cache read failed", map[string]interface{}{
				"term":  term.Text,
				"error": err.Error(),
			})
		}
		return domain.ResultsPage{}, false
	}

	var page domain.ResultsPage
	if err := json.Unmarshal(raw, &page); err != nil {
		s.logger.Warn("cached results page is corrupt, refetching", map[string]interface{}{
			"term":  term.Text,
			"error": err.Error(),
		})
		return domain.ResultsPage{}, false
	}

	s.logger.Debug("results cache hit", map[string]interface{}{"term": term.Text})
	return page, true
}

// fetchWithRetry calls the provider up to maxAttempts times, backing off
// exponentially with jitter between attempts. Only transient provider
// failures are retried.
func (s *RetrievalStage) fetchWithRetry(ctx context.Context, term domain.SearchTerm) (domain.ResultsPage, error) {
	var lastErr error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return domain.ResultsPage{}, ctx.Err()
			case <-time.After(backoffDelay(s.baseDelay, attempt)):
			}
		}

		page, err := s.provider.Fetch(ctx, term.Text, term.MaxResults)
		if err == nil {
			s.storePage(ctx, term, page)
			return page, nil
		}

		lastErr = err
		if !coreerrors.IsTransient(err) {
			s.logger.Error("results fetch failed permanently", map[string]interface{}{
				"term":  term.Text,
				"error": err.Error(),
			})
			return domain.ResultsPage{}, err
		}

		s.logger.Warn("transient results fetch failure, retrying", map[string]interface{}{
			"term":    term.Text,
			"attempt": attempt + 1,
			"error":   err.Error(),
		})
	}

	return domain.ResultsPage{}, coreerrors.WrapError(lastErr, "results fetch exhausted retries")
}

func (s *RetrievalStage) storePage(ctx context.Context, term domain.SearchTerm, page domain.ResultsPage) {
	raw, err := json.Marshal(page)
	if err != nil {
		s.logger.Warn("results page not cacheable", map[string]interface{}{
			"term":  term.Text,
			"error": err.Error(),
		})
		return
	}

	if err := s.cache.Set(ctx, resultsKeyPrefix+term.Text, raw, s.ttl); err != nil {
		s.logger.Warn("results cache write failed", map[string]interface{}{
			"term":  term.Text,
			"error": err.Error(),
		})
	}
}

// backoffDelay is base*2^(attempt-1) with ±20% jitter.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	delay := base << (attempt - 1)
	jitter := 1 + (rand.Float64()*0.4 - 0.2)
	return time.Duration(float64(delay) * jitter)
}

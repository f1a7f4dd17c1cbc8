// ABOUTME: Tests for the analysis worker pool
// ABOUTME: Covers lifecycle, job delivery and submission to a stopped pool

package workers

import (
	"context"
	"testing"
	"time"

	"serp-insights-api/core/domain"
	coreerrors "serp-insights-api/core/errors"
	"serp-insights-api/core/interfaces"
	"serp-insights-api/core/pipeline"
)

type stubLogger struct{}

func (stubLogger) Debug(string, map[string]interface{}) {}
func (stubLogger) Info(string, map[string]interface{})  {}
func (stubLogger) Warn(string, map[string]interface{})  {}
func (stubLogger) Error(string, map[string]interface{}) {}

type stubCache struct{}

func (stubCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, coreerrors.ErrCacheMiss
}
func (stubCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}
func (stubCache) Delete(ctx context.Context, key string) error { return nil }

type stubProvider struct{}

func (stubProvider) Fetch(ctx context.Context, term string, maxResults int) (domain.ResultsPage, error) {
	return domain.ResultsPage{
		Entries: []domain.ResultEntry{
			{Rank: 1, Domain: "etsy.com", URL: "https://etsy.com/1", Title: "Buy Funny Dad Shirt", Description: "Shop funny dad shirts on sale"},
		},
	}, nil
}

func newTestWorker(t *testing.T) *AnalysisWorker {
	t.Helper()
	deps := interfaces.Dependencies{
		Cache:    stubCache{},
		Provider: stubProvider{},
		Logger:   stubLogger{},
	}
	return NewAnalysisWorker(pipeline.New(deps, pipeline.Options{}), WorkerConfig{MaxWorkers: 2, QueueSize: 8})
}

func TestAnalysisWorker_ProcessesJob(t *testing.T) {
	aw := newTestWorker(t)
	if err := aw.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer aw.Stop()

	resultCh := make(chan domain.AnalysisResult, 1)
	errorCh := make(chan error, 1)

	err := aw.SubmitJob(&AnalysisJob{
		Term:     domain.SearchTerm{Text: "funny dad shirt"},
		Context:  context.Background(),
		ResultCh: resultCh,
		ErrorCh:  errorCh,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	select {
	case result := <-resultCh:
		if result.Term != "funny dad shirt" {
			t.Errorf("unexpected term in result: %q", result.Term)
		}
	case err := <-errorCh:
		t.Fatalf("job failed: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the job result")
	}
}

func TestAnalysisWorker_SubmitToStoppedPool(t *testing.T) {
	aw := newTestWorker(t)

	err := aw.SubmitJob(&AnalysisJob{Term: domain.SearchTerm{Text: "funny dad shirt"}})
	if err != ErrWorkerNotRunning {
		t.Errorf("expected ErrWorkerNotRunning, got %v", err)
	}
}

func TestAnalysisWorker_BatchDeliversAllResults(t *testing.T) {
	aw := newTestWorker(t)
	if err := aw.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer aw.Stop()

	terms := []domain.SearchTerm{
		{Text: "funny dad shirt"},
		{Text: "vintage cat tee"},
		{Text: "retro gamer shirt"},
	}
	resultCh := make(chan domain.AnalysisResult, len(terms))
	errorCh := make(chan error, len(terms))

	if err := aw.AnalyzeBatch(context.Background(), terms, resultCh, errorCh); err != nil {
		t.Fatalf("batch submit failed: %v", err)
	}

	received := 0
	deadline := time.After(10 * time.Second)
	for received < len(terms) {
		select {
		case <-resultCh:
			received++
		case err := <-errorCh:
			t.Fatalf("batch job failed: %v", err)
		case <-deadline:
			t.Fatalf("timed out after %d of %d results", received, len(terms))
		}
	}
}

func TestAnalysisWorker_StartTwiceIsNoop(t *testing.T) {
	aw := newTestWorker(t)
	if err := aw.Start(); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	if err := aw.Start(); err != nil {
		t.Fatalf("second start failed: %v", err)
	}
	if err := aw.Stop(); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if err := aw.Stop(); err != nil {
		t.Fatalf("second stop failed: %v", err)
	}
}

// ABOUTME: Pipeline orchestrator running the analysis stages strictly in sequence
// ABOUTME: Owns the analysis cache short-circuit, run deadline and result assembly

package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"serp-insights-api/core/domain"
	coreerrors "serp-insights-api/core/errors"
	"serp-insights-api/core/features"
	"serp-insights-api/core/gap"
	"serp-insights-api/core/intent"
	"serp-insights-api/core/interfaces"
	"serp-insights-api/core/recommend"
)

const (
	// analysisKeyPrefix namespaces cached assembled analyses.
	analysisKeyPrefix = "analysis::"

	// DefaultAnalysisTTL keeps assembled analyses for a day.
	DefaultAnalysisTTL = 24 * time.Hour

	// DefaultRunDeadline bounds one full pipeline run.
	DefaultRunDeadline = 30 * time.Second
)

// Options tune a pipeline. Zero values fall back to package defaults.
type Options struct {
	// Vocabulary anchors validation, intent scoring and gap analysis to a niche
	Vocabulary domain.Vocabulary

	// Epsilon is the intent tie-break margin
	Epsilon float64

	// SimilarityThreshold is the gap detector's high-overlap cutoff
	SimilarityThreshold float64

	// RetryBaseDelay seeds the retrieval backoff
	RetryBaseDelay time.Duration

	// RetryMaxAttempts bounds provider calls per fetch
	RetryMaxAttempts int

	// ResultsTTL is the raw results page cache lifetime
	ResultsTTL time.Duration

	// AnalysisTTL is the assembled analysis cache lifetime
	AnalysisTTL time.Duration

	// RunDeadline bounds one full run
	RunDeadline time.Duration
}

// Pipeline runs the full analysis sequence for a search term. Safe for
// concurrent use; concurrent runs share only the cache and the retrieval
// stage's in-flight fetch table.
type Pipeline struct {
	validate *ValidationStage
	stages   []Stage

	cache       interfaces.Cache
	logger      interfaces.Logger
	analysisTTL time.Duration
	deadline    time.Duration
}

// New assembles a pipeline from the injected dependencies. The stage order
// is fixed: validation, retrieval, feature extraction, intent
// classification, gap analysis, recommendation generation.
func New(deps interfaces.Dependencies, opts Options) *Pipeline {
	vocab := opts.Vocabulary
	if len(vocab.NicheTerms) == 0 {
		vocab = domain.DefaultVocabulary()
	}
	if opts.AnalysisTTL <= 0 {
		opts.AnalysisTTL = DefaultAnalysisTTL
	}
	if opts.RunDeadline <= 0 {
		opts.RunDeadline = DefaultRunDeadline
	}

	return &Pipeline{
		validate: NewValidationStage(vocab, deps.Logger),
		stages: []Stage{
			NewRetrievalStage(deps.Provider, deps.Cache, deps.Logger, opts.RetryBaseDelay, opts.RetryMaxAttempts, opts.ResultsTTL),
			NewFeatureStage(features.NewExtractor()),
			NewIntentStage(intent.NewEngine(vocab, opts.Epsilon, deps.Logger)),
			NewGapStage(gap.NewAnalyzer(vocab, opts.SimilarityThreshold, deps.Logger)),
			NewRecommendationStage(recommend.NewEngine(deps.Logger)),
		},
		cache:       deps.Cache,
		logger:      deps.Logger,
		analysisTTL: opts.AnalysisTTL,
		deadline:    opts.RunDeadline,
	}
}

// Run analyzes one search term end to end. A cached analysis for the
// normalized term short-circuits every later stage. Exceeding the run
// deadline returns a PipelineTimeoutError with nothing written to cache.
func (p *Pipeline) Run(ctx context.Context, term domain.SearchTerm) (domain.AnalysisResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.deadline)
	defer cancel()

	pctx := NewContext()

	validated, err := p.validate.Process(ctx, term, pctx)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	normalized := validated.(domain.SearchTerm)

	if cached, ok := p.cachedAnalysis(ctx, normalized); ok {
		p.logger.Info("analysis served from cache", map[string]interface{}{
			"term": normalized.Text,
		})
		return cached, nil
	}

	started := time.Now()
	output := validated
	for _, stage := range p.stages {
		output, err = stage.Process(ctx, output, pctx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return domain.AnalysisResult{}, &coreerrors.PipelineTimeoutError{
					Term:     normalized.Text,
					Deadline: p.deadline,
				}
			}
			p.logger.Error("pipeline stage failed", map[string]interface{}{
				"stage": stage.Name(),
				"term":  normalized.Text,
				"error": err.Error(),
			})
			return domain.AnalysisResult{}, err
		}
	}

	result := p.assemble(normalized, pctx, output.(domain.RecommendationSet))
	p.storeAnalysis(ctx, result)

	p.logger.Info("analysis complete", map[string]interface{}{
		"term":       normalized.Text,
		"intent":     string(result.Intent.Intent),
		"confidence": result.Intent.Confidence,
		"elapsed_ms": time.Since(started).Milliseconds(),
	})

	return result, nil
}

// assemble builds the final result from the context accumulated over the run.
func (p *Pipeline) assemble(term domain.SearchTerm, pctx *Context, recs domain.RecommendationSet) domain.AnalysisResult {
	result := domain.AnalysisResult{
		ID:              uuid.NewString(),
		Term:            term.Text,
		Timestamp:       time.Now().UTC(),
		Recommendations: recs,
	}

	if v, ok := pctx.Get(ctxKeyIntent); ok {
		result.Intent = v.(domain.IntentAnalysis)
	}
	if v, ok := pctx.Get(ctxKeyGap); ok {
		result.Gap = v.(domain.MarketGap)
	}
	if v, ok := pctx.Get(ctxKeyFeatures); ok {
		result.Features = v.([]domain.PageFeature)
	}

	return result
}

func (p *Pipeline) cachedAnalysis(ctx context.Context, term domain.SearchTerm) (domain.AnalysisResult, bool) {
	raw, err := p.cache.Get(ctx, analysisKeyPrefix+term.Text)
	if err != nil {
		if !errors.Is(err, coreerrors.ErrCacheMiss) {
			p.logger.Warn("analysis cache read failed", map[string]interface{}{
				"term":  term.Text,
				"error": err.Error(),
			})
		}
		return domain.AnalysisResult{}, false
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		p.logger.Warn("cached analysis is corrupt, recomputing", map[string]interface{}{
			"term":  term.Text,
			"error": err.Error(),
		})
		return domain.AnalysisResult{}, false
	}
	return result, true
}

// storeAnalysis writes the assembled result. A cache failure degrades to a
// warning; the caller still gets the result.
func (p *Pipeline) storeAnalysis(ctx context.Context, result domain.AnalysisResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		p.logger.Warn("analysis not cacheable", map[string]interface{}{
			"term":  result.Term,
			"error": err.Error(),
		})
		return
	}

	if err := p.cache.Set(ctx, analysisKeyPrefix+result.Term, raw, p.analysisTTL); err != nil {
		p.logger.Warn("analysis cache write failed", map[string]interface{}{
			"term":  result.Term,
			"error": err.Error(),
		})
	}
}

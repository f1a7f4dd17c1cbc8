// ABOUTME: Analysis stages adapting the feature, intent, gap and recommendation engines
// ABOUTME: Each stage pulls its extra inputs from the shared context bag

package pipeline

import (
	"context"
	"fmt"

	"serp-insights-api/core/domain"
	"serp-insights-api/core/features"
	"serp-insights-api/core/gap"
	"serp-insights-api/core/intent"
	"serp-insights-api/core/recommend"
)

// FeatureStage extracts structural page features from the raw results page.
type FeatureStage struct {
	extractor *features.Extractor
}

func NewFeatureStage(extractor *features.Extractor) *FeatureStage {
	return &FeatureStage{extractor: extractor}
}

func (s *FeatureStage) Name() string { return "feature extraction" }

func (s *FeatureStage) Process(ctx context.Context, input interface{}, pctx *Context) (interface{}, error) {
	page, ok := input.(domain.ResultsPage)
	if !ok {
		return nil, fmt.Errorf("feature stage: unexpected input type %T", input)
	}

	detected := s.extractor.Extract(page)
	pctx.Set(ctxKeyFeatures, detected)
	return detected, nil
}

// IntentStage classifies intent from the entries and features of the run.
type IntentStage struct {
	engine *intent.Engine
}

func NewIntentStage(engine *intent.Engine) *IntentStage {
	return &IntentStage{engine: engine}
}

func (s *IntentStage) Name() string { return "intent classification" }

func (s *IntentStage) Process(ctx context.Context, input interface{}, pctx *Context) (interface{}, error) {
	detected, ok := input.([]domain.PageFeature)
	if !ok {
		return nil, fmt.Errorf("intent stage: unexpected input type %T", input)
	}

	term, page, err := runInputs(pctx, s.Name())
	if err != nil {
		return nil, err
	}

	analysis := s.engine.Classify(term, page.Entries, detected)
	pctx.Set(ctxKeyIntent, analysis)
	return analysis, nil
}

// GapStage scores the market gap left by the current results.
type GapStage struct {
	analyzer *gap.Analyzer
}

func NewGapStage(analyzer *gap.Analyzer) *GapStage {
	return &GapStage{analyzer: analyzer}
}

func (s *GapStage) Name() string { return "market gap analysis" }

func (s *GapStage) Process(ctx context.Context, input interface{}, pctx *Context) (interface{}, error) {
	analysis, ok := input.(domain.IntentAnalysis)
	if !ok {
		return nil, fmt.Errorf("gap stage: unexpected input type %T", input)
	}

	term, page, err := runInputs(pctx, s.Name())
	if err != nil {
		return nil, err
	}

	verdict := s.analyzer.Analyze(term, page.Entries, analysis)
	pctx.Set(ctxKeyGap, verdict)
	return verdict, nil
}

// RecommendationStage turns the accumulated findings into ordered tactics.
type RecommendationStage struct {
	engine *recommend.Engine
}

func NewRecommendationStage(engine *recommend.Engine) *RecommendationStage {
	return &RecommendationStage{engine: engine}
}

func (s *RecommendationStage) Name() string { return "recommendation generation" }

func (s *RecommendationStage) Process(ctx context.Context, input interface{}, pctx *Context) (interface{}, error) {
	verdict, ok := input.(domain.MarketGap)
	if !ok {
		return nil, fmt.Errorf("recommendation stage: unexpected input type %T", input)
	}

	term, _, err := runInputs(pctx, s.Name())
	if err != nil {
		return nil, err
	}

	analysisVal, ok := pctx.Get(ctxKeyIntent)
	if !ok {
		return nil, fmt.Errorf("%s: intent analysis missing from run context", s.Name())
	}
	featuresVal, _ := pctx.Get(ctxKeyFeatures)
	detected, _ := featuresVal.([]domain.PageFeature)

	set := s.engine.Build(term, analysisVal.(domain.IntentAnalysis), verdict, detected)
	return set, nil
}

// runInputs fetches the term and page every analysis stage depends on.
func runInputs(pctx *Context, stage string) (domain.SearchTerm, domain.ResultsPage, error) {
	termVal, ok := pctx.Get(ctxKeyTerm)
	if !ok {
		return domain.SearchTerm{}, domain.ResultsPage{}, fmt.Errorf("%s: term missing from run context", stage)
	}
	pageVal, ok := pctx.Get(ctxKeyPage)
	if !ok {
		return domain.SearchTerm{}, domain.ResultsPage{}, fmt.Errorf("%s: results page missing from run context", stage)
	}
	return termVal.(domain.SearchTerm), pageVal.(domain.ResultsPage), nil
}

// ABOUTME: Tests for the recommendation engine
// ABOUTME: Covers priority density, source flags, dedupe, determinism and empty input

package recommend

import (
	"reflect"
	"testing"

	"serp-insights-api/core/domain"
)

type noopLogger struct{}

func (noopLogger) Debug(string, map[string]interface{}) {}
func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}

var testTerm = domain.SearchTerm{Text: "funny dad shirt"}

func transactional(confidence float64) domain.IntentAnalysis {
	return domain.IntentAnalysis{
		Intent:      domain.IntentTransactional,
		Confidence:  confidence,
		MainKeyword: domain.Keyword{Text: "shirt", Relevance: 1},
		Signals:     []string{"paid_listings_present"},
	}
}

func TestBuild_TransactionalIntentProducesProductTactics(t *testing.T) {
	engine := NewEngine(noopLogger{})

	set := engine.Build(testTerm, transactional(0.85), domain.MarketGap{}, nil)

	if !set.IntentBased {
		t.Error("expected the intent-based flag to be set")
	}
	if set.GapBased {
		t.Error("did not expect the gap-based flag")
	}
	if len(set.Recommendations) == 0 {
		t.Fatal("expected recommendations")
	}

	tactics := map[domain.TacticType]bool{}
	for _, rec := range set.Recommendations {
		tactics[rec.Tactic] = true
	}
	if !tactics[domain.TacticProductPage] {
		t.Error("expected a product page tactic")
	}
	if !tactics[domain.TacticMarketplace] {
		t.Error("expected a marketplace tactic")
	}
	if !set.IsValid() {
		t.Errorf("set failed validation: %+v", set)
	}
}

func TestBuild_PrioritiesAreDense(t *testing.T) {
	engine := NewEngine(noopLogger{})
	gap := domain.MarketGap{
		Detected:         true,
		Description:      "Top results are near-duplicates with no niche angle",
		OpportunityScore: 0.7,
		CompetitionLevel: 0.6,
		RelatedKeywords:  []string{"vintage funny dad shirt"},
	}
	features := []domain.PageFeature{
		{Type: domain.FeaturePaidListing, Position: 1},
		{Type: domain.FeatureVideo, Position: 8},
	}

	set := engine.Build(testTerm, transactional(0.85), gap, features)

	for i, rec := range set.Recommendations {
		if rec.Priority != i+1 {
			t.Fatalf("priority at index %d is %d, want %d", i, rec.Priority, i+1)
		}
	}
	if !set.GapBased || !set.IntentBased {
		t.Errorf("expected both source flags, got %+v", set)
	}
}

func TestBuild_GapTacticsOutrankEquallyConfidentIntentTactics(t *testing.T) {
	engine := NewEngine(noopLogger{})
	gap := domain.MarketGap{
		Detected:         true,
		Description:      "Top results are near-duplicates with no niche angle",
		OpportunityScore: 0.85,
		CompetitionLevel: 0.5,
	}

	set := engine.Build(testTerm, transactional(0.85), gap, nil)

	if len(set.Recommendations) == 0 {
		t.Fatal("expected recommendations")
	}
	if set.Recommendations[0].Tactic != domain.TacticKeywordTargeting {
		t.Errorf("expected the gap tactic first, got %s", set.Recommendations[0].Tactic)
	}
}

func TestBuild_FeatureTacticsMapped(t *testing.T) {
	engine := NewEngine(noopLogger{})
	features := []domain.PageFeature{
		{Type: domain.FeatureDirectAnswer, Position: 1},
		{Type: domain.FeatureImageCollection, Position: 4},
		{Type: domain.FeatureOther, Position: 9},
	}

	set := engine.Build(testTerm, domain.IntentAnalysis{}, domain.MarketGap{}, features)

	tactics := map[domain.TacticType]bool{}
	for _, rec := range set.Recommendations {
		tactics[rec.Tactic] = true
	}
	if !tactics[domain.TacticAnswerContent] {
		t.Error("expected an answer content tactic for the direct answer")
	}
	if !tactics[domain.TacticImageOptimization] {
		t.Error("expected an image optimization tactic")
	}
	if len(set.Recommendations) != 2 {
		t.Errorf("unmapped features should produce no tactic, got %d recommendations", len(set.Recommendations))
	}
	if set.IntentBased || set.GapBased {
		t.Errorf("feature-only tactics should leave both flags false, got %+v", set)
	}
}

func TestBuild_DuplicateTacticsCollapsed(t *testing.T) {
	engine := NewEngine(noopLogger{})
	features := []domain.PageFeature{
		{Type: domain.FeatureDirectAnswer, Position: 1},
		{Type: domain.FeatureRelatedQuestions, Position: 5},
	}

	set := engine.Build(testTerm, domain.IntentAnalysis{}, domain.MarketGap{}, features)

	answerCount := 0
	for _, rec := range set.Recommendations {
		if rec.Tactic == domain.TacticAnswerContent {
			answerCount++
		}
	}
	if answerCount != 1 {
		t.Errorf("expected one answer content tactic after dedupe, got %d", answerCount)
	}
}

func TestBuild_EmptyInputsYieldEmptySet(t *testing.T) {
	engine := NewEngine(noopLogger{})

	set := engine.Build(testTerm, domain.IntentAnalysis{}, domain.MarketGap{}, nil)

	if len(set.Recommendations) != 0 {
		t.Errorf("expected an empty set, got %d recommendations", len(set.Recommendations))
	}
	if set.IntentBased || set.GapBased {
		t.Errorf("expected both flags false, got %+v", set)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	engine := NewEngine(noopLogger{})
	gap := domain.MarketGap{
		Detected:         true,
		Description:      "Top results are near-duplicates with no niche angle",
		OpportunityScore: 0.7,
		CompetitionLevel: 0.6,
		RelatedKeywords:  []string{"vintage funny dad shirt", "retro funny dad shirt"},
	}
	features := []domain.PageFeature{
		{Type: domain.FeaturePaidListing, Position: 1},
		{Type: domain.FeatureDirectAnswer, Position: 2},
		{Type: domain.FeatureVideo, Position: 7},
	}

	first := engine.Build(testTerm, transactional(0.85), gap, features)
	second := engine.Build(testTerm, transactional(0.85), gap, features)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs should produce identical recommendation sets")
	}
}

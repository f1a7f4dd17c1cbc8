// ABOUTME: AnalysisResult domain model aggregating all outputs of one pipeline run
// ABOUTME: Owned by the orchestrator during the run, handed to the caller on success

package domain

import "time"

// AnalysisResult is the complete outcome of analyzing one search term.
// All contained entities are created fresh per run and immutable afterwards.
type AnalysisResult struct {
	// ID uniquely identifies this analysis
	ID string `json:"analysis_id"`

	// Term is the normalized search term that was analyzed
	Term string `json:"term"`

	// Timestamp is when the analysis completed, in UTC
	Timestamp time.Time `json:"timestamp"`

	// Intent is the classified intent with confidence and keywords
	Intent IntentAnalysis `json:"intent_analysis"`

	// Gap is the market gap assessment
	Gap MarketGap `json:"market_gap"`

	// Features are the detected page features, ordered by position
	Features []PageFeature `json:"features"`

	// Recommendations are the prioritized tactics
	Recommendations RecommendationSet `json:"recommendations"`
}

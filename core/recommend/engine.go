// ABOUTME: Recommendation engine turning intent, gap and feature findings into tactics
// ABOUTME: Deduplicates, scores and orders tactics into dense 1..N priorities

package recommend

import (
	"fmt"
	"sort"
	"strings"

	"serp-insights-api/core/domain"
	"serp-insights-api/core/interfaces"
)

const (
	// gapBonus lifts gap-derived tactics ahead of equally confident intent tactics.
	gapBonus = 0.1

	// featureBonus lifts tactics targeting a feature shown above the fold.
	featureBonus = 0.05

	// topFeaturePosition is the highest rank position still counted as above the fold.
	topFeaturePosition = 3

	maxConfidence = 1.0
)

// Engine builds prioritized recommendation sets. Safe for concurrent use.
type Engine struct {
	logger interfaces.Logger
}

func NewEngine(logger interfaces.Logger) *Engine {
	return &Engine{logger: logger}
}

// Build assembles recommendations from the classified intent, the market gap
// verdict and the page features. The returned set is deterministic for a
// given input: tactics are deduplicated, sorted by adjusted confidence with
// the tactic name as tie-break, and assigned dense priorities starting at 1.
func (e *Engine) Build(term domain.SearchTerm, analysis domain.IntentAnalysis, gap domain.MarketGap, features []domain.PageFeature) domain.RecommendationSet {
	var candidates []candidate

	intentTactics := e.intentTactics(term, analysis)
	candidates = append(candidates, intentTactics...)

	gapTactics := e.gapTactics(term, gap)
	candidates = append(candidates, gapTactics...)

	candidates = append(candidates, e.featureTactics(term, features)...)

	candidates = dedupe(candidates)

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].rec.Tactic < candidates[j].rec.Tactic
	})

	set := domain.RecommendationSet{
		Recommendations: make([]domain.Recommendation, 0, len(candidates)),
		IntentBased:     len(intentTactics) > 0,
		GapBased:        len(gapTactics) > 0,
	}
	for i, c := range candidates {
		c.rec.Priority = i + 1
		set.Recommendations = append(set.Recommendations, c.rec)
	}

	if e.logger != nil {
		e.logger.Debug("recommendations built", map[string]interface{}{
			"term":  term.Text,
			"count": len(set.Recommendations),
		})
	}

	return set
}

// candidate carries a recommendation with its sort score. The score includes
// source bonuses that must not leak into the published confidence.
type candidate struct {
	rec   domain.Recommendation
	score float64
}

func (e *Engine) intentTactics(term domain.SearchTerm, analysis domain.IntentAnalysis) []candidate {
	if analysis.Intent == "" || analysis.Confidence <= 0 {
		return nil
	}

	confidence := analysis.Confidence
	evidence := append([]string(nil), analysis.Signals...)

	var recs []domain.Recommendation
	switch analysis.Intent {
	case domain.IntentTransactional:
		recs = []domain.Recommendation{
			{
				Tactic:             domain.TacticProductPage,
				Description:        fmt.Sprintf("Optimize product pages for %q with price, availability and review markup", term.Text),
				Confidence:         confidence,
				SupportingEvidence: evidence,
				EstimatedEffort:    2,
			},
			{
				Tactic:             domain.TacticMarketplace,
				Description:        fmt.Sprintf("Strengthen marketplace listings targeting %q with optimized titles and tags", term.Text),
				Confidence:         confidence,
				SupportingEvidence: evidence,
				EstimatedEffort:    2,
			},
		}
	case domain.IntentInformational:
		recs = []domain.Recommendation{
			{
				Tactic:             domain.TacticContentCreation,
				Description:        fmt.Sprintf("Publish an in-depth guide answering the questions behind %q", term.Text),
				Confidence:         confidence,
				SupportingEvidence: evidence,
				EstimatedEffort:    3,
			},
			{
				Tactic:             domain.TacticLinkBuilding,
				Description:        fmt.Sprintf("Earn links to authoritative content on %q from niche publications", term.Text),
				Confidence:         confidence * 0.8,
				SupportingEvidence: evidence,
				EstimatedEffort:    4,
			},
		}
	case domain.IntentExploratory:
		recs = []domain.Recommendation{
			{
				Tactic:             domain.TacticCollectionPage,
				Description:        fmt.Sprintf("Build a curated collection page showcasing designs for %q", term.Text),
				Confidence:         confidence,
				SupportingEvidence: evidence,
				EstimatedEffort:    2,
			},
			{
				Tactic:             domain.TacticContentCreation,
				Description:        fmt.Sprintf("Create inspiration content (roundups, lookbooks) around %q", term.Text),
				Confidence:         confidence * 0.9,
				SupportingEvidence: evidence,
				EstimatedEffort:    3,
			},
		}
	case domain.IntentNavigational:
		recs = []domain.Recommendation{
			{
				Tactic:             domain.TacticBrandDefense,
				Description:        fmt.Sprintf("Secure branded positions for %q so competitors cannot intercept the traffic", term.Text),
				Confidence:         confidence,
				SupportingEvidence: evidence,
				EstimatedEffort:    1,
			},
		}
	}

	out := make([]candidate, 0, len(recs))
	for _, r := range recs {
		r.Confidence = clampConfidence(r.Confidence)
		out = append(out, candidate{rec: r, score: r.Confidence})
	}
	return out
}

func (e *Engine) gapTactics(term domain.SearchTerm, gap domain.MarketGap) []candidate {
	if !gap.Detected {
		return nil
	}

	evidence := []string{gap.Description}
	confidence := clampConfidence(gap.OpportunityScore)

	recs := []domain.Recommendation{
		{
			Tactic:             domain.TacticKeywordTargeting,
			Description:        fmt.Sprintf("Target the underserved angle behind %q before competitors notice it", term.Text),
			Confidence:         confidence,
			SupportingEvidence: evidence,
			EstimatedEffort:    2,
		},
	}

	if len(gap.RelatedKeywords) > 0 {
		recs = append(recs, domain.Recommendation{
			Tactic: domain.TacticContentCreation,
			Description: fmt.Sprintf("Create dedicated pages for related queries: %s",
				strings.Join(gap.RelatedKeywords, ", ")),
			Confidence:         confidence,
			SupportingEvidence: evidence,
			EstimatedEffort:    3,
		})
	}

	out := make([]candidate, 0, len(recs))
	for _, r := range recs {
		out = append(out, candidate{rec: r, score: clampScore(r.Confidence + gapBonus)})
	}
	return out
}

func (e *Engine) featureTactics(term domain.SearchTerm, features []domain.PageFeature) []candidate {
	var out []candidate
	for _, f := range features {
		var rec domain.Recommendation
		switch f.Type {
		case domain.FeatureDirectAnswer, domain.FeatureRelatedQuestions:
			rec = domain.Recommendation{
				Tactic:          domain.TacticAnswerContent,
				Description:     fmt.Sprintf("Structure content to win the answer placement shown for %q", term.Text),
				Confidence:      0.6,
				EstimatedEffort: 2,
			}
		case domain.FeaturePaidListing:
			rec = domain.Recommendation{
				Tactic:          domain.TacticPaidAcquisition,
				Description:     fmt.Sprintf("Evaluate paid placements for %q since ads already occupy the page", term.Text),
				Confidence:      0.5,
				EstimatedEffort: 2,
			}
		case domain.FeatureImageCollection:
			rec = domain.Recommendation{
				Tactic:          domain.TacticImageOptimization,
				Description:     fmt.Sprintf("Optimize product imagery and alt text to surface in image results for %q", term.Text),
				Confidence:      0.5,
				EstimatedEffort: 1,
			}
		case domain.FeatureVideo:
			rec = domain.Recommendation{
				Tactic:          domain.TacticVideoContent,
				Description:     fmt.Sprintf("Produce short video content targeting %q to claim the video carousel", term.Text),
				Confidence:      0.4,
				EstimatedEffort: 4,
			}
		default:
			continue
		}

		rec.SupportingEvidence = []string{fmt.Sprintf("%s present at position %d", f.Type, f.Position)}

		score := rec.Confidence
		if f.Position > 0 && f.Position <= topFeaturePosition {
			score = clampScore(score + featureBonus)
		}
		out = append(out, candidate{rec: rec, score: score})
	}
	return out
}

// dedupe drops repeated (tactic, normalized description) pairs, keeping the
// occurrence with the highest score.
func dedupe(candidates []candidate) []candidate {
	type key struct {
		tactic domain.TacticType
		desc   string
	}

	best := make(map[key]int)
	var out []candidate
	for _, c := range candidates {
		k := key{c.rec.Tactic, strings.ToLower(strings.TrimSpace(c.rec.Description))}
		if idx, seen := best[k]; seen {
			if c.score > out[idx].score {
				out[idx] = c
			}
			continue
		}
		best[k] = len(out)
		out = append(out, c)
	}
	return out
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxConfidence {
		return maxConfidence
	}
	return v
}

func clampScore(v float64) float64 {
	if v > maxConfidence+gapBonus {
		return maxConfidence + gapBonus
	}
	return v
}

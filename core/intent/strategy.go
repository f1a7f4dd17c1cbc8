// ABOUTME: Strategy contract for intent scoring plus shared rank-weighting helpers
// ABOUTME: Each strategy scores one intent type from entries and page features

package intent

import (
	"serp-insights-api/core/domain"
)

// maxConfidence caps every strategy score; classification always leaves room
// for uncertainty.
const maxConfidence = 0.95

// signalBase is the floor added once any signal fires. A page with no
// signals for a strategy scores exactly zero.
const signalBase = 0.5

// topWeightedRanks is how many leading entries count double when weighting.
const topWeightedRanks = 3

// Strategy scores how strongly a results page matches one intent type.
// Score returns a confidence in [0,1] and the evidence tags behind it; an
// empty tag list means confidence zero.
type Strategy interface {
	// Intent returns the intent type this strategy scores.
	Intent() domain.IntentType

	// Score rates the page for this intent.
	Score(term domain.SearchTerm, entries []domain.ResultEntry, features []domain.PageFeature) (float64, []string)
}

// entryWeight doubles the influence of the top-ranked entries.
func entryWeight(rank int) float64 {
	if rank >= 1 && rank <= topWeightedRanks {
		return 2
	}
	return 1
}

// weightedRatio computes the rank-weighted share of entries satisfying match.
func weightedRatio(entries []domain.ResultEntry, match func(domain.ResultEntry) bool) float64 {
	var matched, total float64
	for _, e := range entries {
		w := entryWeight(e.Rank)
		total += w
		if match(e) {
			matched += w
		}
	}
	if total == 0 {
		return 0
	}
	return matched / total
}

// finishScore converts accumulated contributions into a confidence. No
// signals means zero; otherwise the base plus contributions, capped.
func finishScore(contribution float64, signals []string) (float64, []string) {
	if len(signals) == 0 {
		return 0, nil
	}

	score := signalBase + contribution
	if score > maxConfidence {
		score = maxConfidence
	}
	if score < 0 {
		score = 0
	}
	return score, signals
}

// capped limits a per-signal contribution.
func capped(value, cap float64) float64 {
	if value > cap {
		return cap
	}
	return value
}

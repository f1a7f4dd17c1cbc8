// ABOUTME: Exploratory intent strategy scoring idea-seeking, browse-oriented pages
// ABOUTME: Signals: image collections, video blocks, idea vocabulary, domain diversity

package intent

import (
	"fmt"
	"strings"

	"serp-insights-api/core/domain"
	"serp-insights-api/pkg/utils/text"
)

// diversityThreshold is the unique-domain share above which a page counts
// as serving varied sources.
const diversityThreshold = 0.8

// ExploratoryStrategy detects idea-seeking intent: visual blocks on the
// page, inspiration vocabulary and a spread of distinct domains.
type ExploratoryStrategy struct {
	vocab domain.Vocabulary
}

// NewExploratoryStrategy creates an exploratory strategy over vocab.
func NewExploratoryStrategy(vocab domain.Vocabulary) *ExploratoryStrategy {
	return &ExploratoryStrategy{vocab: vocab}
}

// Intent returns the intent type this strategy scores.
func (s *ExploratoryStrategy) Intent() domain.IntentType {
	return domain.IntentExploratory
}

// Score rates the page for exploratory intent.
func (s *ExploratoryStrategy) Score(term domain.SearchTerm, entries []domain.ResultEntry, features []domain.PageFeature) (float64, []string) {
	var signals []string
	var contribution float64

	if domain.HasFeature(features, domain.FeatureImageCollection) {
		signals = append(signals, "image collection present")
		contribution += 0.20
	}

	if domain.HasFeature(features, domain.FeatureVideo) {
		signals = append(signals, "video results present")
		contribution += 0.10
	}

	var matchedTerms []string
	seen := make(map[string]struct{})
	for _, e := range entries {
		for _, t := range text.MatchingTerms(e.Title+" "+e.Description, s.vocab.ExploratoryTerms) {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			matchedTerms = append(matchedTerms, t)
		}
	}
	if len(matchedTerms) > 0 {
		signals = append(signals, "idea-seeking terms in results: "+strings.Join(matchedTerms, ", "))
		contribution += capped(float64(len(matchedTerms))*0.03, 0.15)
	}

	if diversity := domainDiversity(entries); diversity >= diversityThreshold {
		signals = append(signals, fmt.Sprintf("high domain diversity: %.0f%% unique", diversity*100))
		contribution += 0.10
	}

	return finishScore(contribution, signals)
}

// domainDiversity is the share of distinct domains among the entries.
func domainDiversity(entries []domain.ResultEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	unique := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		unique[strings.ToLower(e.Domain)] = struct{}{}
	}
	return float64(len(unique)) / float64(len(entries))
}

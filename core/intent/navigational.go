// ABOUTME: Navigational intent strategy scoring destination-seeking result pages
// ABOUTME: Signals: site links, single-domain dominance in the top ranks, brand token in the term

package intent

import (
	"strings"

	"serp-insights-api/core/domain"
	"serp-insights-api/pkg/utils/text"
)

// NavigationalStrategy detects destination-seeking intent: one domain
// dominating the leading results, that domain's name appearing in the term
// itself, and site-link blocks under a result.
type NavigationalStrategy struct {
	vocab domain.Vocabulary
}

// NewNavigationalStrategy creates a navigational strategy over vocab.
func NewNavigationalStrategy(vocab domain.Vocabulary) *NavigationalStrategy {
	return &NavigationalStrategy{vocab: vocab}
}

// Intent returns the intent type this strategy scores.
func (s *NavigationalStrategy) Intent() domain.IntentType {
	return domain.IntentNavigational
}

// Score rates the page for navigational intent.
func (s *NavigationalStrategy) Score(term domain.SearchTerm, entries []domain.ResultEntry, features []domain.PageFeature) (float64, []string) {
	var signals []string
	var contribution float64

	if domain.HasFeature(features, domain.FeatureSiteLinks) {
		signals = append(signals, "site links present")
		contribution += 0.20
	}

	if dominant, ok := dominantDomain(entries); ok {
		signals = append(signals, "single domain dominates top results: "+dominant)
		contribution += 0.20

		if brand := brandToken(dominant); brand != "" && strings.Contains(term.Text, brand) {
			signals = append(signals, "term contains brand token: "+brand)
			contribution += 0.20
		}
	}

	var matchedTerms []string
	seen := make(map[string]struct{})
	for _, e := range entries {
		for _, t := range text.MatchingTerms(e.Title+" "+e.Description, s.vocab.NavigationalTerms) {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			matchedTerms = append(matchedTerms, t)
		}
	}
	if len(matchedTerms) > 0 {
		signals = append(signals, "navigational terms in results: "+strings.Join(matchedTerms, ", "))
		contribution += capped(float64(len(matchedTerms))*0.03, 0.15)
	}

	return finishScore(contribution, signals)
}

// dominantDomain reports the domain held by at least two of the top three
// entries, if any.
func dominantDomain(entries []domain.ResultEntry) (string, bool) {
	counts := make(map[string]int)
	for _, e := range entries {
		if e.Rank > topWeightedRanks {
			continue
		}
		d := strings.ToLower(e.Domain)
		if d == "" {
			continue
		}
		counts[d]++
		if counts[d] >= 2 {
			return d, true
		}
	}
	return "", false
}

// brandToken strips the TLD-ish suffix off a domain to get its brand name.
func brandToken(domainName string) string {
	name := domainName
	if idx := strings.Index(name, "."); idx > 0 {
		name = name[:idx]
	}
	if len(name) < 3 {
		return ""
	}
	return name
}

// ABOUTME: Informational intent strategy scoring explanation-seeking result pages
// ABOUTME: Signals: direct answers, related questions, content domains, question phrasing

package intent

import (
	"fmt"
	"strings"

	"serp-insights-api/core/domain"
	"serp-insights-api/pkg/utils/text"
)

// InformationalStrategy detects explanation-seeking intent: answer boxes,
// question blocks, blog/article domains and guide vocabulary in results.
type InformationalStrategy struct {
	vocab domain.Vocabulary
}

// NewInformationalStrategy creates an informational strategy over vocab.
func NewInformationalStrategy(vocab domain.Vocabulary) *InformationalStrategy {
	return &InformationalStrategy{vocab: vocab}
}

// Intent returns the intent type this strategy scores.
func (s *InformationalStrategy) Intent() domain.IntentType {
	return domain.IntentInformational
}

// Score rates the page for informational intent.
func (s *InformationalStrategy) Score(term domain.SearchTerm, entries []domain.ResultEntry, features []domain.PageFeature) (float64, []string) {
	var signals []string
	var contribution float64

	if domain.HasFeature(features, domain.FeatureDirectAnswer) {
		signals = append(signals, "direct answer present")
		contribution += 0.20
	}

	if domain.HasFeature(features, domain.FeatureRelatedQuestions) {
		signals = append(signals, "related questions present")
		contribution += 0.15
	}

	contentRatio := weightedRatio(entries, func(e domain.ResultEntry) bool {
		return text.ContainsAny(e.Domain, s.vocab.ContentDomains)
	})
	if contentRatio > 0 {
		signals = append(signals, fmt.Sprintf("content domains hold %.0f%% of weighted results", contentRatio*100))
		contribution += contentRatio * 0.15
	}

	var matchedTerms []string
	seen := make(map[string]struct{})
	questionTitles := 0
	for _, e := range entries {
		combined := e.Title + " " + e.Description
		for _, t := range text.MatchingTerms(combined, s.vocab.InformationalTerms) {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			matchedTerms = append(matchedTerms, t)
		}
		if strings.Contains(e.Title, "?") {
			questionTitles++
		}
	}
	if len(matchedTerms) > 0 {
		signals = append(signals, "informational terms in results: "+strings.Join(matchedTerms, ", "))
		contribution += capped(float64(len(matchedTerms))*0.03, 0.15)
	}
	if questionTitles > 0 {
		signals = append(signals, fmt.Sprintf("question-style titles: %d", questionTitles))
		contribution += capped(float64(questionTitles)*0.05, 0.15)
	}

	return finishScore(contribution, signals)
}

// ABOUTME: Transactional intent strategy scoring purchase-oriented result pages
// ABOUTME: Signals: paid listings, e-commerce domains, price patterns, transaction terms

package intent

import (
	"fmt"
	"regexp"
	"strings"

	"serp-insights-api/core/domain"
	"serp-insights-api/pkg/utils/text"
)

var pricePattern = regexp.MustCompile(`\$\d+(?:\.\d{2})?`)

// TransactionalStrategy detects purchase-oriented search intent: paid
// listings on the page, marketplace domains among the results, price
// mentions and shop vocabulary in titles and descriptions.
type TransactionalStrategy struct {
	vocab domain.Vocabulary
}

// NewTransactionalStrategy creates a transactional strategy over vocab.
func NewTransactionalStrategy(vocab domain.Vocabulary) *TransactionalStrategy {
	return &TransactionalStrategy{vocab: vocab}
}

// Intent returns the intent type this strategy scores.
func (s *TransactionalStrategy) Intent() domain.IntentType {
	return domain.IntentTransactional
}

// Score rates the page for transactional intent.
func (s *TransactionalStrategy) Score(term domain.SearchTerm, entries []domain.ResultEntry, features []domain.PageFeature) (float64, []string) {
	var signals []string
	var contribution float64

	if domain.HasFeature(features, domain.FeaturePaidListing) {
		signals = append(signals, "paid listings present")
		contribution += 0.20
	}

	ecommerceRatio := weightedRatio(entries, func(e domain.ResultEntry) bool {
		return text.ContainsAny(e.Domain, s.vocab.EcommerceDomains)
	})
	if ecommerceRatio > 0 {
		signals = append(signals, fmt.Sprintf("e-commerce domains hold %.0f%% of weighted results", ecommerceRatio*100))
		contribution += ecommerceRatio * 0.15
	}

	priceMentions := 0
	for _, e := range entries {
		priceMentions += len(pricePattern.FindAllString(e.Title+" "+e.Description, -1))
	}
	if priceMentions > 0 {
		signals = append(signals, fmt.Sprintf("price mentions detected: %d", priceMentions))
		contribution += capped(float64(priceMentions)*0.05, 0.15)
	}

	var matchedTerms []string
	seen := make(map[string]struct{})
	for _, e := range entries {
		for _, t := range text.MatchingTerms(e.Title+" "+e.Description, s.vocab.TransactionTerms) {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			matchedTerms = append(matchedTerms, t)
		}
	}
	if len(matchedTerms) > 0 {
		signals = append(signals, "transaction terms in results: "+strings.Join(matchedTerms, ", "))
		contribution += capped(float64(len(matchedTerms))*0.03, 0.15)
	}

	return finishScore(contribution, signals)
}

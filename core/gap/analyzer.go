// ABOUTME: Market gap analyzer comparing result-set composition against classified intent
// ABOUTME: Scores opportunity and competition; degrades to not-detected instead of failing

package gap

import (
	"fmt"
	"sort"
	"strings"

	"serp-insights-api/core/domain"
	"serp-insights-api/core/interfaces"
	"serp-insights-api/pkg/utils/text"
)

const (
	// DefaultSimilarityThreshold is the high-overlap similarity above which
	// a saturated result set may count as a gap.
	DefaultSimilarityThreshold = 0.6

	// minEntries is the smallest result set worth analyzing.
	minEntries = 3

	// topN caps how many leading entries feed the similarity measure.
	topN = 5

	// modifierCoverageCeiling: above this share of modifier-bearing results
	// the niche is considered served.
	modifierCoverageCeiling = 0.4

	// subThemeFloor: below this share of entries addressing the term's own
	// modifiers, a sub-theme gap is declared.
	subThemeFloor = 0.34

	// maxRelatedKeywords caps the suggested queries on a detected gap.
	maxRelatedKeywords = 5

	// titleWeight and descriptionWeight blend the two similarity measures.
	titleWeight       = 0.6
	descriptionWeight = 0.4
)

// Analyzer detects market gaps in a result set. Safe for concurrent use.
type Analyzer struct {
	vocab     domain.Vocabulary
	threshold float64
	logger    interfaces.Logger
}

// NewAnalyzer creates an analyzer. A non-positive threshold falls back to
// DefaultSimilarityThreshold.
func NewAnalyzer(vocab domain.Vocabulary, threshold float64, logger interfaces.Logger) *Analyzer {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Analyzer{vocab: vocab, threshold: threshold, logger: logger}
}

// Analyze compares the result set against the classified intent and scores
// the untapped opportunity. It never fails: with too few entries it returns
// a not-detected gap and logs a warning.
//
// A gap is detected when top results are highly similar to each other while
// niche modifiers are weakly represented, or when the modifiers the term
// itself carries go unaddressed by most entries. OpportunityScore grows with
// result sameness and modifier absence; CompetitionLevel grows with the
// count of e-commerce domains present. Both are clamped to [0,1].
func (a *Analyzer) Analyze(term domain.SearchTerm, entries []domain.ResultEntry, analysis domain.IntentAnalysis) domain.MarketGap {
	if len(entries) < minEntries {
		if a.logger != nil {
			a.logger.Warn("too few entries for gap analysis", map[string]interface{}{
				"entries": len(entries),
			})
		}
		return domain.MarketGap{Detected: false}
	}

	top := entries
	if len(top) > topN {
		top = top[:topN]
	}

	similarity := a.resultSimilarity(top)
	modifierCoverage := coverage(top, a.vocab.NicheModifiers)

	termModifiers := text.MatchingTerms(term.Text, a.vocab.NicheModifiers)
	subThemeCoverage := 1.0
	if len(termModifiers) > 0 {
		subThemeCoverage = coverage(top, termModifiers)
	}

	saturated := similarity > a.threshold && modifierCoverage < modifierCoverageCeiling
	underServed := len(termModifiers) > 0 && subThemeCoverage < subThemeFloor

	if !saturated && !underServed {
		return domain.MarketGap{Detected: false}
	}

	opportunity := clamp01(0.5*similarity + 0.5*(1-modifierCoverage))
	competition := clamp01(0.3 + 0.6*a.ecommerceRatio(top))

	description := a.describe(term, saturated, underServed, termModifiers)

	gap := domain.MarketGap{
		Detected:         true,
		Description:      description,
		OpportunityScore: opportunity,
		CompetitionLevel: competition,
		RelatedKeywords:  a.relatedKeywords(term.Text, top),
	}

	if a.logger != nil {
		a.logger.Info("market gap detected", map[string]interface{}{
			"term":        term.Text,
			"intent":      string(analysis.Intent),
			"opportunity": opportunity,
			"competition": competition,
		})
	}

	return gap
}

// resultSimilarity blends pairwise Jaccard similarity of titles and
// descriptions, weighted toward titles.
func (a *Analyzer) resultSimilarity(entries []domain.ResultEntry) float64 {
	titleSets := make([]map[string]struct{}, len(entries))
	descSets := make([]map[string]struct{}, len(entries))
	for i, e := range entries {
		titleSets[i] = text.TokenSet(e.Title)
		descSets[i] = text.TokenSet(e.Description)
	}

	return titleWeight*averagePairwise(titleSets) + descriptionWeight*averagePairwise(descSets)
}

func averagePairwise(sets []map[string]struct{}) float64 {
	if len(sets) <= 1 {
		return 0
	}

	var total float64
	pairs := 0
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			total += text.Jaccard(sets[i], sets[j])
			pairs++
		}
	}
	return total / float64(pairs)
}

// coverage is the fraction of entries whose title or description contains
// any of the given terms.
func coverage(entries []domain.ResultEntry, terms []string) float64 {
	if len(entries) == 0 || len(terms) == 0 {
		return 0
	}

	hits := 0
	for _, e := range entries {
		if text.ContainsAny(e.Title+" "+e.Description, terms) {
			hits++
		}
	}
	return float64(hits) / float64(len(entries))
}

func (a *Analyzer) ecommerceRatio(entries []domain.ResultEntry) float64 {
	if len(entries) == 0 {
		return 0
	}

	hits := 0
	for _, e := range entries {
		if text.ContainsAny(e.Domain, a.vocab.EcommerceDomains) {
			hits++
		}
	}
	return float64(hits) / float64(len(entries))
}

func (a *Analyzer) describe(term domain.SearchTerm, saturated, underServed bool, termModifiers []string) string {
	keyword := term.Text

	switch {
	case underServed && saturated:
		return fmt.Sprintf("Top results for %q are highly similar and none address the %s angle", keyword, strings.Join(termModifiers, "/"))
	case underServed:
		return fmt.Sprintf("Current results for %q rarely address the %s angle the query asks for", keyword, strings.Join(termModifiers, "/"))
	default:
		return fmt.Sprintf("Top results for %q are near-duplicates with no niche modifiers represented", keyword)
	}
}

// relatedKeywords combines the main keyword with modifiers absent from the
// current results, most obviously missing first.
func (a *Analyzer) relatedKeywords(keyword string, entries []domain.ResultEntry) []string {
	var combined strings.Builder
	for _, e := range entries {
		combined.WriteString(strings.ToLower(e.Title))
		combined.WriteString(" ")
		combined.WriteString(strings.ToLower(e.Description))
		combined.WriteString(" ")
	}
	corpus := combined.String()

	var missing []string
	for _, mod := range a.vocab.NicheModifiers {
		if !strings.Contains(corpus, mod) && !strings.Contains(keyword, mod) {
			missing = append(missing, mod)
		}
	}
	sort.Strings(missing)

	related := make([]string, 0, maxRelatedKeywords)
	for _, mod := range missing {
		if len(related) == maxRelatedKeywords {
			break
		}
		related = append(related, mod+" "+keyword)
	}
	return related
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

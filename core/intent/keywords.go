// ABOUTME: Keyword extraction independent of intent scoring
// ABOUTME: Scores tokens by a blend of frequency and rank-weighted position

package intent

import (
	"sort"

	"serp-insights-api/core/domain"
	"serp-insights-api/pkg/utils/text"
)

// MaxSecondaryKeywords caps how many secondary keywords an analysis carries.
const MaxSecondaryKeywords = 20

// frequencyWeight and positionWeight blend raw frequency with rank-weighted
// occurrence when computing relevance.
const (
	frequencyWeight = 0.6
	positionWeight  = 0.4
)

type tokenStats struct {
	token     string
	frequency int
	weighted  float64
	firstSeen int
}

// ExtractKeywords tokenizes entry titles and descriptions, scores each token
// by frequency blended with rank-weighted occurrence, and returns the
// highest-relevance token as the main keyword plus up to
// MaxSecondaryKeywords secondaries sorted descending by relevance. Ties keep
// first-seen order.
//
// With no entries the term itself becomes the main keyword so downstream
// stages always have one.
func ExtractKeywords(term domain.SearchTerm, entries []domain.ResultEntry) (domain.Keyword, []domain.Keyword) {
	if len(entries) == 0 {
		return domain.Keyword{Text: term.Text, Relevance: 1, Frequency: 0}, []domain.Keyword{}
	}

	stats := make(map[string]*tokenStats)
	order := 0

	for _, e := range entries {
		w := entryWeight(e.Rank)
		for _, tok := range text.Tokenize(e.Title + " " + e.Description) {
			st, ok := stats[tok]
			if !ok {
				st = &tokenStats{token: tok, firstSeen: order}
				stats[tok] = st
				order++
			}
			st.frequency++
			st.weighted += w
		}
	}

	if len(stats) == 0 {
		return domain.Keyword{Text: term.Text, Relevance: 1, Frequency: 0}, []domain.Keyword{}
	}

	var maxFreq int
	var maxWeighted float64
	ranked := make([]*tokenStats, 0, len(stats))
	for _, st := range stats {
		if st.frequency > maxFreq {
			maxFreq = st.frequency
		}
		if st.weighted > maxWeighted {
			maxWeighted = st.weighted
		}
		ranked = append(ranked, st)
	}

	relevance := func(st *tokenStats) float64 {
		return frequencyWeight*float64(st.frequency)/float64(maxFreq) +
			positionWeight*st.weighted/maxWeighted
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := relevance(ranked[i]), relevance(ranked[j])
		if ri != rj {
			return ri > rj
		}
		return ranked[i].firstSeen < ranked[j].firstSeen
	})

	main := domain.Keyword{
		Text:      ranked[0].token,
		Relevance: relevance(ranked[0]),
		Frequency: ranked[0].frequency,
	}

	secondaries := make([]domain.Keyword, 0, MaxSecondaryKeywords)
	for _, st := range ranked[1:] {
		if len(secondaries) == MaxSecondaryKeywords {
			break
		}
		secondaries = append(secondaries, domain.Keyword{
			Text:      st.token,
			Relevance: relevance(st),
			Frequency: st.frequency,
		})
	}

	return main, secondaries
}

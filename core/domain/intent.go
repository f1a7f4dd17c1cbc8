// ABOUTME: Intent domain models covering intent types, keywords and the classification outcome
// ABOUTME: Carries the invariants on confidence ranges and keyword ordering

package domain

// IntentType is the inferred purpose behind a search term.
type IntentType string

const (
	IntentTransactional IntentType = "transactional"
	IntentInformational IntentType = "informational"
	IntentExploratory   IntentType = "exploratory"
	IntentNavigational  IntentType = "navigational"
)

// Keyword is a token extracted from result titles and descriptions, scored by
// how relevant it is to the analyzed term.
type Keyword struct {
	// Text is the keyword text
	Text string `json:"text"`

	// Relevance is a normalized blend of frequency and rank-weighted position (0-1)
	Relevance float64 `json:"relevance"`

	// Frequency is how often the keyword appeared across entries
	Frequency int `json:"frequency"`
}

// IntentAnalysis is the outcome of intent classification for one term.
//
// Invariants: Confidence is in [0,1]; SecondaryKeywords are sorted descending
// by relevance; MainKeyword.Relevance is at least the highest secondary
// relevance.
type IntentAnalysis struct {
	// Intent is the dominant classified intent
	Intent IntentType `json:"intent_type"`

	// Confidence is the winning strategy's score (0-1)
	Confidence float64 `json:"confidence"`

	// MainKeyword is the highest-relevance extracted keyword
	MainKeyword Keyword `json:"main_keyword"`

	// SecondaryKeywords are further keywords, up to 20, descending by relevance
	SecondaryKeywords []Keyword `json:"secondary_keywords"`

	// Signals are human-readable evidence tags behind the classification
	Signals []string `json:"signals"`

	// LowConfidence marks a classification where no strategy found any signal
	LowConfidence bool `json:"low_confidence,omitempty"`
}

// IsValid checks the structural invariants of an intent analysis.
func (a IntentAnalysis) IsValid() bool {
	if a.Confidence < 0 || a.Confidence > 1 {
		return false
	}

	prev := a.MainKeyword.Relevance
	for _, kw := range a.SecondaryKeywords {
		if kw.Relevance > prev {
			return false
		}
		prev = kw.Relevance
	}

	return true
}

// ABOUTME: MarketGap domain model scoring untapped opportunity in current results
// ABOUTME: Optional fields are populated only when a gap is detected

package domain

// MarketGap is a scored indication that current top results under-serve some
// aspect of the inferred intent. When Detected is false the scoring fields
// are zero and omitted from serialized output.
type MarketGap struct {
	// Detected reports whether a gap was found
	Detected bool `json:"detected"`

	// Description explains the gap; set only when Detected
	Description string `json:"description,omitempty"`

	// OpportunityScore sizes the opportunity (0-1); set only when Detected
	OpportunityScore float64 `json:"opportunity_score,omitempty"`

	// CompetitionLevel sizes existing competition (0-1); set only when Detected
	CompetitionLevel float64 `json:"competition_level,omitempty"`

	// RelatedKeywords are suggested queries aimed at the gap
	RelatedKeywords []string `json:"related_keywords,omitempty"`
}

// IsValid checks that a detected gap carries its required fields in range.
func (g MarketGap) IsValid() bool {
	if !g.Detected {
		return true
	}

	if g.Description == "" {
		return false
	}

	if g.OpportunityScore < 0 || g.OpportunityScore > 1 {
		return false
	}

	return g.CompetitionLevel >= 0 && g.CompetitionLevel <= 1
}

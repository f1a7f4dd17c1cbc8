// ABOUTME: Recommendation domain models for prioritized optimization tactics
// ABOUTME: Defines tactic types and the ordering invariants of a recommendation set

package domain

const (
	// DescriptionMinLength is the minimum length of a tactic description.
	DescriptionMinLength = 10

	// DescriptionMaxLength is the maximum length of a tactic description.
	DescriptionMaxLength = 1000
)

// TacticType identifies a kind of optimization tactic.
type TacticType string

const (
	TacticProductPage       TacticType = "product_page_optimization"
	TacticCollectionPage    TacticType = "collection_page_optimization"
	TacticContentCreation   TacticType = "content_creation"
	TacticKeywordTargeting  TacticType = "keyword_targeting"
	TacticAnswerContent     TacticType = "answer_content"
	TacticImageOptimization TacticType = "image_optimization"
	TacticPaidAcquisition   TacticType = "paid_acquisition"
	TacticMarketplace       TacticType = "marketplace_optimization"
	TacticBrandDefense      TacticType = "brand_defense"
	TacticLinkBuilding      TacticType = "link_building"
	TacticVideoContent      TacticType = "video_content"
)

// Recommendation is one actionable optimization tactic.
type Recommendation struct {
	// Tactic is the kind of action recommended
	Tactic TacticType `json:"tactic_type"`

	// Description says what to do, 10-1000 chars
	Description string `json:"description"`

	// Priority orders the set: 1 is highest, values are dense and unique
	Priority int `json:"priority"`

	// Confidence scores how well-supported the tactic is (0-1)
	Confidence float64 `json:"confidence"`

	// SupportingEvidence lists the observations behind the tactic
	SupportingEvidence []string `json:"supporting_evidence,omitempty"`

	// EstimatedEffort sizes the work involved, 1 (easy) to 5 (hard)
	EstimatedEffort int `json:"estimated_effort,omitempty"`
}

// RecommendationSet is an ordered list of recommendations plus flags saying
// which analysis sources contributed to it.
type RecommendationSet struct {
	// Recommendations sorted ascending by priority
	Recommendations []Recommendation `json:"recommendations"`

	// IntentBased reports whether any tactic came from intent analysis
	IntentBased bool `json:"intent_based"`

	// GapBased reports whether any tactic came from market gap analysis
	GapBased bool `json:"gap_based"`
}

// IsValid checks that priorities form a dense 1..N sequence in order.
func (s RecommendationSet) IsValid() bool {
	for i, rec := range s.Recommendations {
		if rec.Priority != i+1 {
			return false
		}

		if len(rec.Description) < DescriptionMinLength || len(rec.Description) > DescriptionMaxLength {
			return false
		}

		if rec.Confidence < 0 || rec.Confidence > 1 {
			return false
		}
	}
	return true
}

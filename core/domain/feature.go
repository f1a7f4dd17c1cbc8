// ABOUTME: PageFeature domain model for structural elements detected on a results page
// ABOUTME: Defines the closed set of feature types used by intent and recommendation logic

package domain

// FeatureType identifies a structural element of a results page.
type FeatureType string

const (
	FeaturePaidListing      FeatureType = "paid_listing"
	FeatureDirectAnswer     FeatureType = "direct_answer"
	FeatureImageCollection  FeatureType = "image_collection"
	FeatureRelatedQuestions FeatureType = "related_questions"
	FeatureSiteLinks        FeatureType = "site_links"
	FeatureVideo            FeatureType = "video"
	FeatureOther            FeatureType = "other"
)

// PageFeature represents one structural element detected on a results page.
type PageFeature struct {
	// Type is the kind of structural element
	Type FeatureType `json:"type"`

	// Position is the 1-based position of the element on the page
	Position int `json:"position"`

	// Payload carries feature-specific details (counts, content excerpts)
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// HasFeature reports whether a feature of the given type is present.
func HasFeature(features []PageFeature, ft FeatureType) bool {
	for _, f := range features {
		if f.Type == ft {
			return true
		}
	}
	return false
}

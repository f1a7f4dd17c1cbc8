// ABOUTME: Feature extraction turns raw page metadata into typed page features
// ABOUTME: Pure and deterministic; performs no I/O and never fails

package features

import (
	"sort"

	"serp-insights-api/core/domain"
)

// Extractor classifies the structural blocks of a results page into typed
// page features. It holds no state and is safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new feature extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract produces one PageFeature per structural element present in the
// page metadata, ordered by position. An unremarkable page yields an empty,
// non-nil slice.
func (e *Extractor) Extract(page domain.ResultsPage) []domain.PageFeature {
	features := make([]domain.PageFeature, 0, 4)
	md := page.Metadata

	if len(md.PaidListings) > 0 {
		features = append(features, domain.PageFeature{
			Type:     domain.FeaturePaidListing,
			Position: positionOrDefault(md.PaidListingsPosition, 1),
			Payload: map[string]interface{}{
				"count":    len(md.PaidListings),
				"listings": paidListingTitles(md.PaidListings),
			},
		})
	}

	if md.DirectAnswer != nil {
		features = append(features, domain.PageFeature{
			Type:     domain.FeatureDirectAnswer,
			Position: positionOrDefault(md.DirectAnswer.Position, 1),
			Payload: map[string]interface{}{
				"content": md.DirectAnswer.Content,
				"source":  md.DirectAnswer.Source,
			},
		})
	}

	if md.ImageCollection != nil && md.ImageCollection.Count > 0 {
		features = append(features, domain.PageFeature{
			Type:     domain.FeatureImageCollection,
			Position: positionOrDefault(md.ImageCollection.Position, 1),
			Payload: map[string]interface{}{
				"count": md.ImageCollection.Count,
			},
		})
	}

	if len(md.RelatedQuestions) > 0 {
		features = append(features, domain.PageFeature{
			Type:     domain.FeatureRelatedQuestions,
			Position: positionOrDefault(md.RelatedQuestionsPosition, 2),
			Payload: map[string]interface{}{
				"count":     len(md.RelatedQuestions),
				"questions": append([]string(nil), md.RelatedQuestions...),
			},
		})
	}

	if len(md.SiteLinks) > 0 {
		features = append(features, domain.PageFeature{
			Type:     domain.FeatureSiteLinks,
			Position: positionOrDefault(md.SiteLinksPosition, 1),
			Payload: map[string]interface{}{
				"count": len(md.SiteLinks),
			},
		})
	}

	if len(md.Videos) > 0 {
		features = append(features, domain.PageFeature{
			Type:     domain.FeatureVideo,
			Position: positionOrDefault(md.VideosPosition, 3),
			Payload: map[string]interface{}{
				"count": len(md.Videos),
			},
		})
	}

	// Stable by position, then by type for blocks sharing a position.
	sort.SliceStable(features, func(i, j int) bool {
		if features[i].Position != features[j].Position {
			return features[i].Position < features[j].Position
		}
		return features[i].Type < features[j].Type
	})

	return features
}

func positionOrDefault(pos, fallback int) int {
	if pos >= 1 {
		return pos
	}
	return fallback
}

func paidListingTitles(listings []domain.PaidListing) []string {
	titles := make([]string, 0, len(listings))
	for _, l := range listings {
		titles = append(titles, l.Title)
	}
	return titles
}

package features

import (
	"testing"

	"serp-insights-api/core/domain"
)

func TestExtract_EmptyPage(t *testing.T) {
	extractor := NewExtractor()

	features := extractor.Extract(domain.ResultsPage{})

	if features == nil {
		t.Fatal("Extract should return an empty slice, not nil")
	}
	if len(features) != 0 {
		t.Errorf("Extract returned %d features for empty page, want 0", len(features))
	}
}

func TestExtract_PaidListings(t *testing.T) {
	extractor := NewExtractor()
	page := domain.ResultsPage{
		Metadata: domain.PageMetadata{
			PaidListings: []domain.PaidListing{
				{Title: "Funny Dad Shirt", Price: "$19.99"},
				{Title: "Best Dad Ever Tee", Price: "$24.99"},
			},
			PaidListingsPosition: 1,
		},
	}

	features := extractor.Extract(page)

	if len(features) != 1 {
		t.Fatalf("Extract returned %d features, want 1", len(features))
	}
	if features[0].Type != domain.FeaturePaidListing {
		t.Errorf("feature type = %q, want paid_listing", features[0].Type)
	}
	if features[0].Position != 1 {
		t.Errorf("feature position = %d, want 1", features[0].Position)
	}
	if count, _ := features[0].Payload["count"].(int); count != 2 {
		t.Errorf("payload count = %v, want 2", features[0].Payload["count"])
	}
}

func TestExtract_OrdersByPosition(t *testing.T) {
	extractor := NewExtractor()
	page := domain.ResultsPage{
		Metadata: domain.PageMetadata{
			DirectAnswer:             &domain.DirectAnswer{Content: "Use bold typography", Position: 1},
			RelatedQuestions:         []string{"how to print a tee?"},
			RelatedQuestionsPosition: 4,
			Videos:                   []domain.VideoResult{{Title: "Design tutorial"}},
			VideosPosition:           2,
		},
	}

	features := extractor.Extract(page)

	if len(features) != 3 {
		t.Fatalf("Extract returned %d features, want 3", len(features))
	}
	want := []domain.FeatureType{domain.FeatureDirectAnswer, domain.FeatureVideo, domain.FeatureRelatedQuestions}
	for i, ft := range want {
		if features[i].Type != ft {
			t.Errorf("feature %d type = %q, want %q", i, features[i].Type, ft)
		}
	}
}

func TestExtract_DefaultsMissingPositions(t *testing.T) {
	extractor := NewExtractor()
	page := domain.ResultsPage{
		Metadata: domain.PageMetadata{
			ImageCollection: &domain.ImageCollection{Count: 8},
		},
	}

	features := extractor.Extract(page)

	if len(features) != 1 {
		t.Fatalf("Extract returned %d features, want 1", len(features))
	}
	if features[0].Position < 1 {
		t.Errorf("feature position = %d, want >= 1", features[0].Position)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	extractor := NewExtractor()
	page := domain.ResultsPage{
		Metadata: domain.PageMetadata{
			PaidListings:     []domain.PaidListing{{Title: "Tee"}},
			DirectAnswer:     &domain.DirectAnswer{Content: "answer text", Position: 1},
			RelatedQuestions: []string{"why?"},
		},
	}

	first := extractor.Extract(page)
	second := extractor.Extract(page)

	if len(first) != len(second) {
		t.Fatalf("repeated extraction differs in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type != second[i].Type || first[i].Position != second[i].Position {
			t.Errorf("feature %d differs between runs", i)
		}
	}
}

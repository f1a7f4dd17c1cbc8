// ABOUTME: Result-page domain models for search results returned by a provider
// ABOUTME: Defines result entries plus the raw structural metadata of a results page

package domain

import "strings"

// ResultEntry represents a single organic result on a results page.
type ResultEntry struct {
	// Title is the result's headline
	Title string `json:"title"`

	// URL is the full link to the result
	URL string `json:"url"`

	// Description is the snippet shown under the title
	Description string `json:"description"`

	// Domain is the registrable domain of the URL (e.g. "etsy.com")
	Domain string `json:"domain"`

	// Rank is the 1-based position among organic results
	Rank int `json:"rank"`
}

// ResultsPage is the raw data retrieved for a term: the organic entries plus
// the structural metadata blocks the provider reported alongside them.
type ResultsPage struct {
	Entries  []ResultEntry `json:"entries"`
	Metadata PageMetadata  `json:"metadata"`
}

// PageMetadata describes the non-organic blocks of a results page. Every
// block is optional; a zero PageMetadata means a plain ten-blue-links page.
type PageMetadata struct {
	// PaidListings are sponsored/shopping entries shown on the page
	PaidListings []PaidListing `json:"paid_listings,omitempty"`

	// PaidListingsPosition is the 1-based position of the paid block
	PaidListingsPosition int `json:"paid_listings_position,omitempty"`

	// DirectAnswer is the answer box extracted from a result, if any
	DirectAnswer *DirectAnswer `json:"direct_answer,omitempty"`

	// ImageCollection is the image strip/grid block, if any
	ImageCollection *ImageCollection `json:"image_collection,omitempty"`

	// RelatedQuestions are "people also ask" style questions
	RelatedQuestions []string `json:"related_questions,omitempty"`

	// RelatedQuestionsPosition is the 1-based position of the question block
	RelatedQuestionsPosition int `json:"related_questions_position,omitempty"`

	// SiteLinks are sub-links shown under a dominant result
	SiteLinks []SiteLink `json:"site_links,omitempty"`

	// SiteLinksPosition is the 1-based position of the site-link block
	SiteLinksPosition int `json:"site_links_position,omitempty"`

	// Videos are video results embedded in the page
	Videos []VideoResult `json:"videos,omitempty"`

	// VideosPosition is the 1-based position of the video block
	VideosPosition int `json:"videos_position,omitempty"`
}

// PaidListing represents one sponsored product entry.
type PaidListing struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Price  string `json:"price,omitempty"`
	Seller string `json:"seller,omitempty"`
}

// DirectAnswer represents an answer box.
type DirectAnswer struct {
	Content  string `json:"content"`
	Source   string `json:"source,omitempty"`
	Position int    `json:"position"`
}

// ImageCollection represents an image strip or grid.
type ImageCollection struct {
	Count    int `json:"count"`
	Position int `json:"position"`
}

// SiteLink represents one sub-link under a dominant result.
type SiteLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// VideoResult represents one embedded video result.
type VideoResult struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source,omitempty"`
}

// TopEntries returns up to n leading entries without copying the backing array.
func (p ResultsPage) TopEntries(n int) []ResultEntry {
	if len(p.Entries) <= n {
		return p.Entries
	}
	return p.Entries[:n]
}

// IsValid checks that an entry carries the fields every later stage relies on.
func (e ResultEntry) IsValid() bool {
	if strings.TrimSpace(e.Title) == "" {
		return false
	}

	if strings.TrimSpace(e.URL) == "" {
		return false
	}

	return e.Rank >= 1
}

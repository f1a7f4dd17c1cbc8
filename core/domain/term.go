// ABOUTME: SearchTerm domain model represents a normalized query to analyze
// ABOUTME: Provides normalization helpers and validation bounds for incoming terms

package domain

import "strings"

const (
	// TermMinLength is the minimum accepted length of a search term.
	TermMinLength = 3

	// TermMaxLength is the maximum accepted length of a search term.
	TermMaxLength = 255

	// DefaultMaxResults is the number of result entries analyzed when the
	// caller does not ask for a specific count.
	DefaultMaxResults = 10

	// MaxResultsLimit caps how many result entries a single analysis may request.
	MaxResultsLimit = 100
)

// SearchTerm represents a search query to analyze.
// A SearchTerm produced by NormalizeTerm is immutable for the rest of the run.
type SearchTerm struct {
	// Text is the normalized query text
	Text string

	// MaxResults is the number of result entries to analyze (1-100)
	MaxResults int
}

// NormalizeTerm trims surrounding whitespace, lowercases the text and
// collapses internal whitespace runs to single spaces.
func NormalizeTerm(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	return strings.Join(strings.Fields(normalized), " ")
}

// Tokens returns the whitespace-separated tokens of the term text.
func (t SearchTerm) Tokens() []string {
	return strings.Fields(t.Text)
}

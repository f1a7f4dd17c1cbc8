// ABOUTME: Text utilities for tokenizing titles and descriptions
// ABOUTME: Shared by keyword extraction, intent scoring and gap analysis

package text

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[a-z]{3,}`)

// stopWords are tokens carrying no keyword value.
var stopWords = map[string]struct{}{
	"and": {}, "the": {}, "for": {}, "with": {}, "this": {}, "that": {},
	"from": {}, "have": {}, "not": {}, "you": {}, "your": {}, "are": {},
	"our": {}, "its": {}, "was": {}, "will": {}, "can": {}, "all": {},
}

// Tokenize lowercases s and returns its alphabetic tokens of three or more
// characters, stop words excluded, in order of appearance.
func Tokenize(s string) []string {
	words := wordPattern.FindAllString(strings.ToLower(s), -1)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if _, skip := stopWords[w]; skip {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// TokenSet returns the distinct tokens of s as a set.
func TokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(s) {
		set[tok] = struct{}{}
	}
	return set
}

// ContainsAny reports whether s contains any of the given substrings,
// case-insensitively.
func ContainsAny(s string, subs []string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

// MatchingTerms returns the subset of terms contained in s, case-insensitively,
// preserving the order of terms.
func MatchingTerms(s string, terms []string) []string {
	lower := strings.ToLower(s)
	var matched []string
	for _, term := range terms {
		if strings.Contains(lower, term) {
			matched = append(matched, term)
		}
	}
	return matched
}

// Jaccard computes the Jaccard similarity of two token sets. Empty sets
// compare as zero.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

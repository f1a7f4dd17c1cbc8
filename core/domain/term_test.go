// ABOUTME: Tests for search term normalization and tokenization
// ABOUTME: Covers whitespace collapsing, casing and token splitting

package domain

import (
	"reflect"
	"testing"
)

func TestNormalizeTerm_TrimsAndLowercases(t *testing.T) {
	got := NormalizeTerm("  Funny DAD Shirt  ")
	if got != "funny dad shirt" {
		t.Errorf("NormalizeTerm = %q, want %q", got, "funny dad shirt")
	}
}

func TestNormalizeTerm_CollapsesInternalWhitespace(t *testing.T) {
	got := NormalizeTerm("funny \t dad\n\nshirt")
	if got != "funny dad shirt" {
		t.Errorf("NormalizeTerm = %q, want %q", got, "funny dad shirt")
	}
}

func TestNormalizeTerm_EmptyInput(t *testing.T) {
	if got := NormalizeTerm("   "); got != "" {
		t.Errorf("NormalizeTerm = %q, want empty", got)
	}
}

func TestTokens_SplitsNormalizedText(t *testing.T) {
	term := SearchTerm{Text: "funny dad shirt"}
	got := term.Tokens()
	want := []string{"funny", "dad", "shirt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens = %v, want %v", got, want)
	}
}

package intent

import (
	"testing"

	"serp-insights-api/core/domain"
)

func keywordEntries() []domain.ResultEntry {
	return []domain.ResultEntry{
		{Title: "Funny dad shirt collection", Description: "Funny shirts for dads who grill", Domain: "etsy.com", Rank: 1},
		{Title: "Best funny dad shirts", Description: "Funny dad gifts and shirts", Domain: "amazon.com", Rank: 2},
		{Title: "Dad shirt ideas", Description: "Shirts and gifts for every dad", Domain: "redbubble.com", Rank: 3},
	}
}

func TestExtractKeywords_MainIsHighestRelevance(t *testing.T) {
	term := domain.SearchTerm{Text: "funny dad shirt", MaxResults: 10}

	main, secondaries := ExtractKeywords(term, keywordEntries())

	if main.Text == "" {
		t.Fatal("main keyword should not be empty")
	}
	for _, kw := range secondaries {
		if kw.Relevance > main.Relevance {
			t.Errorf("secondary %q relevance %v exceeds main %q relevance %v",
				kw.Text, kw.Relevance, main.Text, main.Relevance)
		}
	}
}

func TestExtractKeywords_SecondariesNonIncreasing(t *testing.T) {
	term := domain.SearchTerm{Text: "funny dad shirt", MaxResults: 10}

	_, secondaries := ExtractKeywords(term, keywordEntries())

	for i := 1; i < len(secondaries); i++ {
		if secondaries[i].Relevance > secondaries[i-1].Relevance {
			t.Errorf("secondary keywords not sorted: %v before %v",
				secondaries[i-1].Relevance, secondaries[i].Relevance)
		}
	}
}

func TestExtractKeywords_RelevanceInRange(t *testing.T) {
	term := domain.SearchTerm{Text: "funny dad shirt", MaxResults: 10}

	main, secondaries := ExtractKeywords(term, keywordEntries())

	all := append([]domain.Keyword{main}, secondaries...)
	for _, kw := range all {
		if kw.Relevance < 0 || kw.Relevance > 1 {
			t.Errorf("keyword %q relevance %v outside [0,1]", kw.Text, kw.Relevance)
		}
		if kw.Frequency < 0 {
			t.Errorf("keyword %q has negative frequency", kw.Text)
		}
	}
}

func TestExtractKeywords_EmptyEntries(t *testing.T) {
	term := domain.SearchTerm{Text: "funny dad shirt", MaxResults: 10}

	main, secondaries := ExtractKeywords(term, nil)

	if main.Text != "funny dad shirt" {
		t.Errorf("main keyword = %q, want the term itself", main.Text)
	}
	if main.Relevance != 1 {
		t.Errorf("main relevance = %v, want 1", main.Relevance)
	}
	if len(secondaries) != 0 {
		t.Errorf("secondaries = %v, want none", secondaries)
	}
}

func TestExtractKeywords_CapsSecondaries(t *testing.T) {
	term := domain.SearchTerm{Text: "funny dad shirt", MaxResults: 10}
	entries := make([]domain.ResultEntry, 0, 10)
	titles := []string{
		"alpha bravo charlie delta echo foxtrot",
		"golf hotel india juliett kilo lima",
		"mike november oscar papa quebec romeo",
		"sierra tango uniform victor whiskey xray",
		"yankee zulu apple banana cherry grape",
	}
	for i, title := range titles {
		entries = append(entries, domain.ResultEntry{Title: title, Rank: i + 1})
	}

	_, secondaries := ExtractKeywords(term, entries)

	if len(secondaries) > MaxSecondaryKeywords {
		t.Errorf("got %d secondaries, cap is %d", len(secondaries), MaxSecondaryKeywords)
	}
}

func TestExtractKeywords_Deterministic(t *testing.T) {
	term := domain.SearchTerm{Text: "funny dad shirt", MaxResults: 10}

	main1, sec1 := ExtractKeywords(term, keywordEntries())
	main2, sec2 := ExtractKeywords(term, keywordEntries())

	if main1 != main2 {
		t.Errorf("main keyword differs between runs: %v vs %v", main1, main2)
	}
	if len(sec1) != len(sec2) {
		t.Fatalf("secondary counts differ: %d vs %d", len(sec1), len(sec2))
	}
	for i := range sec1 {
		if sec1[i] != sec2[i] {
			t.Errorf("secondary %d differs: %v vs %v", i, sec1[i], sec2[i])
		}
	}
}

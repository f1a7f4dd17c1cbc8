// ABOUTME: Niche vocabulary shared by validation, intent scoring and gap analysis
// ABOUTME: Defaults target the print-on-demand graphic tee niche

package domain

// Vocabulary collects the term lists that anchor analysis to a niche. The
// zero value is unusable; call DefaultVocabulary or build one from config.
type Vocabulary struct {
	// EcommerceDomains are substrings marking marketplace/shop domains
	EcommerceDomains []string

	// ContentDomains are substrings marking blog/article/reference domains
	ContentDomains []string

	// TransactionTerms signal purchase-oriented results
	TransactionTerms []string

	// InformationalTerms signal guide/explanation results
	InformationalTerms []string

	// ExploratoryTerms signal idea-seeking, browse-oriented results
	ExploratoryTerms []string

	// NavigationalTerms signal brand/site-seeking results
	NavigationalTerms []string

	// NicheTerms mark a term as belonging to the niche at all
	NicheTerms []string

	// NicheModifiers are attribute words whose absence from results hints at a gap
	NicheModifiers []string
}

// DefaultVocabulary returns the built-in print-on-demand graphic tee vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		EcommerceDomains: []string{
			"amazon", "etsy", "ebay", "walmart", "shopify",
			"redbubble", "teepublic", "teespring", "zazzle", "threadless",
		},
		ContentDomains: []string{
			"blog", "medium", "wikipedia", "wikihow", "reddit", "quora",
		},
		TransactionTerms: []string{
			"buy", "shop", "order", "purchase", "price", "sale",
			"add to cart", "checkout", "merch",
		},
		InformationalTerms: []string{
			"how", "what", "why", "guide", "tutorial", "tips", "learn",
		},
		ExploratoryTerms: []string{
			"ideas", "inspiration", "examples", "collection", "gallery",
			"designs", "best", "top",
		},
		NavigationalTerms: []string{
			"official", "website", "login", "account",
		},
		NicheTerms: []string{
			"shirt", "tee", "t-shirt", "tshirt", "graphic", "print",
			"design", "pod", "apparel", "clothing", "merch",
			"redbubble", "teepublic", "teespring", "zazzle", "threadless", "etsy",
		},
		NicheModifiers: []string{
			"funny", "vintage", "retro", "custom", "personalized",
			"minimalist", "cute", "aesthetic", "unisex", "organic",
		},
	}
}

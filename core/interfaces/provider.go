// ABOUTME: ResultsProvider contract for fetching raw results-page data
// ABOUTME: Implementations map their failure modes onto the ProviderError taxonomy

package interfaces

import (
	"context"

	"serp-insights-api/core/domain"
)

// ResultsProvider fetches the raw results page for a search term.
//
// Implementations return a *coreerrors.ProviderError on failure, with
// Transient set for timeouts, 5xx responses and rate limiting, and unset for
// credential, quota and rejected-term failures. Implementations must be safe
// for concurrent use.
type ResultsProvider interface {
	// Fetch retrieves up to maxResults entries for term.
	Fetch(ctx context.Context, term string, maxResults int) (domain.ResultsPage, error)
}

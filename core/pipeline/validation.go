// ABOUTME: Input validation stage normalizing and vetting search terms
// ABOUTME: Rejects out-of-bounds, malformed and off-niche terms with ValidationError

package pipeline

import (
	"context"
	"fmt"
	"regexp"

	"serp-insights-api/core/domain"
	coreerrors "serp-insights-api/core/errors"
	"serp-insights-api/core/interfaces"
	"serp-insights-api/pkg/utils/text"
)

// termPattern limits normalized terms to characters a results provider
// accepts without escaping surprises.
var termPattern = regexp.MustCompile(`^[a-z0-9&' -]+$`)

// ValidationStage is the first pipeline stage. It normalizes the incoming
// term, enforces length and character bounds, applies the niche-relevance
// heuristic and defaults MaxResults.
type ValidationStage struct {
	vocab  domain.Vocabulary
	logger interfaces.Logger
}

func NewValidationStage(vocab domain.Vocabulary, logger interfaces.Logger) *ValidationStage {
	return &ValidationStage{vocab: vocab, logger: logger}
}

func (s *ValidationStage) Name() string { return "input validation" }

// Process expects a domain.SearchTerm and returns the normalized term. The
// normalized text is also stored in the context under the term key.
func (s *ValidationStage) Process(ctx context.Context, input interface{}, pctx *Context) (interface{}, error) {
	term, ok := input.(domain.SearchTerm)
	if !ok {
		return nil, &coreerrors.ValidationError{Field: "term", Message: "input is not a search term"}
	}

	normalized := domain.SearchTerm{
		Text:       domain.NormalizeTerm(term.Text),
		MaxResults: term.MaxResults,
	}

	if normalized.Text == "" {
		return nil, &coreerrors.ValidationError{Field: "term", Message: "search term cannot be empty"}
	}
	if len(normalized.Text) < domain.TermMinLength {
		return nil, &coreerrors.ValidationError{
			Field:   "term",
			Message: fmt.Sprintf("search term must be at least %d characters", domain.TermMinLength),
		}
	}
	if len(normalized.Text) > domain.TermMaxLength {
		return nil, &coreerrors.ValidationError{
			Field:   "term",
			Message: fmt.Sprintf("search term must be at most %d characters", domain.TermMaxLength),
		}
	}
	if !termPattern.MatchString(normalized.Text) {
		return nil, &coreerrors.ValidationError{Field: "term", Message: "search term contains unsupported characters"}
	}
	if !text.ContainsAny(normalized.Text, s.vocab.NicheTerms) {
		return nil, &coreerrors.ValidationError{
			Field:   "term",
			Message: "search term does not look related to the configured niche; add a term like 'shirt', 'tee' or 'graphic'",
		}
	}

	if normalized.MaxResults == 0 {
		normalized.MaxResults = domain.DefaultMaxResults
	}
	if normalized.MaxResults < 1 || normalized.MaxResults > domain.MaxResultsLimit {
		return nil, &coreerrors.ValidationError{
			Field:   "max_results",
			Message: fmt.Sprintf("max results must be between 1 and %d", domain.MaxResultsLimit),
		}
	}

	s.logger.Debug("term validated", map[string]interface{}{
		"term":        normalized.Text,
		"max_results": normalized.MaxResults,
	})

	pctx.Set(ctxKeyTerm, normalized)
	return normalized, nil
}

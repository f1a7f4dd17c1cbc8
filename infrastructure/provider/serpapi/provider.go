// ABOUTME: Results provider backed by a JSON search-results API
// ABOUTME: Rate-limits and circuit-breaks outgoing calls, mapping failures onto the error taxonomy

package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"serp-insights-api/core/domain"
	coreerrors "serp-insights-api/core/errors"
	"serp-insights-api/core/interfaces"
	"serp-insights-api/pkg/config"
)

const providerName = "serpapi"

// Provider fetches results pages from a JSON search-results API. Outgoing
// calls pass a rate limiter and a circuit breaker; an open breaker surfaces
// as a transient provider error so the retrieval stage backs off.
type Provider struct {
	http    interfaces.HTTPClient
	logger  interfaces.Logger
	apiKey  string
	baseURL string
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewProvider creates a provider from configuration.
func NewProvider(cfg config.ProviderConfig, httpClient interfaces.HTTPClient, logger interfaces.Logger) (*Provider, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("provider base URL cannot be empty")
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = int(rps)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    providerName,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("provider circuit state changed", map[string]interface{}{
				"provider": name,
				"from":     from.String(),
				"to":       to.String(),
			})
		},
	})

	return &Provider{
		http:    httpClient,
		logger:  logger,
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		breaker: breaker,
	}, nil
}

// Fetch retrieves up to maxResults entries for term.
func (p *Provider) Fetch(ctx context.Context, term string, maxResults int) (domain.ResultsPage, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return domain.ResultsPage{}, err
	}

	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.fetch(ctx, term, maxResults)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return domain.ResultsPage{}, &coreerrors.ProviderError{
				Provider:  providerName,
				Message:   "circuit breaker open",
				Transient: true,
				Err:       err,
			}
		}
		return domain.ResultsPage{}, err
	}

	return result.(domain.ResultsPage), nil
}

func (p *Provider) fetch(ctx context.Context, term string, maxResults int) (domain.ResultsPage, error) {
	endpoint, err := p.buildURL(term, maxResults)
	if err != nil {
		return domain.ResultsPage{}, &coreerrors.ProviderError{
			Provider: providerName,
			Message:  "invalid request URL",
			Err:      err,
		}
	}

	resp, err := p.http.Get(ctx, endpoint)
	if err != nil {
		// Transport failures (timeouts, connection resets) are worth a retry.
		return domain.ResultsPage{}, &coreerrors.ProviderError{
			Provider:  providerName,
			Message:   "request failed",
			Transient: true,
			Err:       err,
		}
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return domain.ResultsPage{}, statusError(resp.StatusCode())
	}

	raw, err := io.ReadAll(resp.Body())
	if err != nil {
		return domain.ResultsPage{}, &coreerrors.ProviderError{
			Provider:  providerName,
			Message:   "reading response body failed",
			Transient: true,
			Err:       err,
		}
	}

	var payload apiResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.ResultsPage{}, &coreerrors.ProviderError{
			Provider: providerName,
			Message:  "malformed response payload",
			Err:      err,
		}
	}

	page := payload.toPage(maxResults)
	p.logger.Debug("results fetched", map[string]interface{}{
		"term":    term,
		"entries": len(page.Entries),
	})
	return page, nil
}

func (p *Provider) buildURL(term string, maxResults int) (string, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("q", term)
	q.Set("num", strconv.Itoa(maxResults))
	if p.apiKey != "" {
		q.Set("api_key", p.apiKey)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// statusError maps an HTTP status onto the provider error taxonomy.
// Rate limiting and server errors are transient; client errors are not.
func statusError(status int) *coreerrors.ProviderError {
	transient := status == 429 || status >= 500
	return &coreerrors.ProviderError{
		Provider:   providerName,
		StatusCode: status,
		Message:    fmt.Sprintf("unexpected status %d", status),
		Transient:  transient,
	}
}

// apiResponse mirrors the provider's JSON payload.
type apiResponse struct {
	OrganicResults []organicResult `json:"organic_results"`

	ShoppingResults         []shoppingResult `json:"shopping_results"`
	ShoppingResultsPosition int              `json:"shopping_results_position"`

	AnswerBox *answerBox `json:"answer_box"`

	InlineImages *inlineImages `json:"inline_images"`

	RelatedQuestions         []string `json:"related_questions"`
	RelatedQuestionsPosition int      `json:"related_questions_position"`

	Sitelinks         []sitelink `json:"sitelinks"`
	SitelinksPosition int        `json:"sitelinks_position"`

	InlineVideos         []inlineVideo `json:"inline_videos"`
	InlineVideosPosition int           `json:"inline_videos_position"`
}

type organicResult struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Domain   string `json:"domain"`
}

type shoppingResult struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Price  string `json:"price"`
	Seller string `json:"seller"`
}

type answerBox struct {
	Answer   string `json:"answer"`
	Source   string `json:"source"`
	Position int    `json:"position"`
}

type inlineImages struct {
	Count    int `json:"count"`
	Position int `json:"position"`
}

type sitelink struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

type inlineVideo struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Source string `json:"source"`
}

func (r apiResponse) toPage(maxResults int) domain.ResultsPage {
	entries := make([]domain.ResultEntry, 0, len(r.OrganicResults))
	for i, org := range r.OrganicResults {
		if len(entries) == maxResults {
			break
		}

		rank := org.Position
		if rank == 0 {
			rank = i + 1
		}
		entries = append(entries, domain.ResultEntry{
			Title:       org.Title,
			URL:         org.Link,
			Description: org.Snippet,
			Domain:      entryDomain(org.Domain, org.Link),
			Rank:        rank,
		})
	}

	meta := domain.PageMetadata{
		RelatedQuestions:         r.RelatedQuestions,
		RelatedQuestionsPosition: r.RelatedQuestionsPosition,
	}

	for _, s := range r.ShoppingResults {
		meta.PaidListings = append(meta.PaidListings, domain.PaidListing{
			Title:  s.Title,
			URL:    s.Link,
			Price:  s.Price,
			Seller: s.Seller,
		})
	}
	meta.PaidListingsPosition = r.ShoppingResultsPosition

	if r.AnswerBox != nil {
		meta.DirectAnswer = &domain.DirectAnswer{
			Content:  r.AnswerBox.Answer,
			Source:   r.AnswerBox.Source,
			Position: r.AnswerBox.Position,
		}
	}
	if r.InlineImages != nil {
		meta.ImageCollection = &domain.ImageCollection{
			Count:    r.InlineImages.Count,
			Position: r.InlineImages.Position,
		}
	}
	for _, s := range r.Sitelinks {
		meta.SiteLinks = append(meta.SiteLinks, domain.SiteLink{Title: s.Title, URL: s.Link})
	}
	meta.SiteLinksPosition = r.SitelinksPosition

	for _, v := range r.InlineVideos {
		meta.Videos = append(meta.Videos, domain.VideoResult{Title: v.Title, URL: v.Link, Source: v.Source})
	}
	meta.VideosPosition = r.InlineVideosPosition

	return domain.ResultsPage{Entries: entries, Metadata: meta}
}

// entryDomain prefers the reported domain, falling back to the URL host.
func entryDomain(reported, link string) string {
	if reported != "" {
		return reported
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

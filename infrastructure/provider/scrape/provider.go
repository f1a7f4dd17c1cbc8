// ABOUTME: Results provider that scrapes an HTML results page with goquery
// ABOUTME: Parses organic entries and the structural blocks the page exposes

package scrape

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"serp-insights-api/core/domain"
	coreerrors "serp-insights-api/core/errors"
	"serp-insights-api/core/interfaces"
	"serp-insights-api/pkg/config"
)

const providerName = "scrape"

// Provider fetches a rendered HTML results page and extracts entries and
// blocks from its markup. It targets the markup of a self-hosted results
// proxy, not a public search engine.
type Provider struct {
	http    interfaces.HTTPClient
	logger  interfaces.Logger
	baseURL string
}

// NewProvider creates a scraping provider from configuration.
func NewProvider(cfg config.ProviderConfig, httpClient interfaces.HTTPClient, logger interfaces.Logger) (*Provider, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("provider base URL cannot be empty")
	}
	return &Provider{
		http:    httpClient,
		logger:  logger,
		baseURL: cfg.BaseURL,
	}, nil
}

// Fetch retrieves up to maxResults entries for term.
func (p *Provider) Fetch(ctx context.Context, term string, maxResults int) (domain.ResultsPage, error) {
	endpoint, err := p.buildURL(term)
	if err != nil {
		return domain.ResultsPage{}, &coreerrors.ProviderError{
			Provider: providerName,
			Message:  "invalid request URL",
			Err:      err,
		}
	}

	resp, err := p.http.Get(ctx, endpoint)
	if err != nil {
		return domain.ResultsPage{}, &coreerrors.ProviderError{
			Provider:  providerName,
			Message:   "request failed",
			Transient: true,
			Err:       err,
		}
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		transient := resp.StatusCode() == 429 || resp.StatusCode() >= 500
		return domain.ResultsPage{}, &coreerrors.ProviderError{
			Provider:   providerName,
			StatusCode: resp.StatusCode(),
			Message:    "unexpected status",
			Transient:  transient,
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body())
	if err != nil {
		return domain.ResultsPage{}, &coreerrors.ProviderError{
			Provider: providerName,
			Message:  "unparseable page",
			Err:      err,
		}
	}

	page := parsePage(doc, maxResults)
	p.logger.Debug("results scraped", map[string]interface{}{
		"term":    term,
		"entries": len(page.Entries),
	})
	return page, nil
}

func (p *Provider) buildURL(term string) (string, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("q", term)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func parsePage(doc *goquery.Document, maxResults int) domain.ResultsPage {
	var page domain.ResultsPage

	doc.Find("div.result").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if len(page.Entries) == maxResults {
			return false
		}

		link := s.Find("h3 a")
		href, _ := link.Attr("href")
		entry := domain.ResultEntry{
			Title:       strings.TrimSpace(link.Text()),
			URL:         href,
			Description: strings.TrimSpace(s.Find("p.snippet").Text()),
			Domain:      hostOf(href),
			Rank:        i + 1,
		}
		if entry.IsValid() {
			page.Entries = append(page.Entries, entry)
		}
		return true
	})

	doc.Find("div.ad-block div.ad").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Find("a").Attr("href")
		page.Metadata.PaidListings = append(page.Metadata.PaidListings, domain.PaidListing{
			Title:  strings.TrimSpace(s.Find(".ad-title").Text()),
			URL:    href,
			Price:  strings.TrimSpace(s.Find(".ad-price").Text()),
			Seller: strings.TrimSpace(s.Find(".ad-seller").Text()),
		})
	})
	if len(page.Metadata.PaidListings) > 0 {
		page.Metadata.PaidListingsPosition = blockPosition(doc, "div.ad-block")
	}

	if answer := doc.Find("div.answer-box"); answer.Length() > 0 {
		page.Metadata.DirectAnswer = &domain.DirectAnswer{
			Content:  strings.TrimSpace(answer.Find(".answer-text").Text()),
			Source:   strings.TrimSpace(answer.Find(".answer-source").Text()),
			Position: blockPosition(doc, "div.answer-box"),
		}
	}

	if images := doc.Find("div.image-pack"); images.Length() > 0 {
		page.Metadata.ImageCollection = &domain.ImageCollection{
			Count:    images.Find("img").Length(),
			Position: blockPosition(doc, "div.image-pack"),
		}
	}

	doc.Find("div.related-questions li").Each(func(i int, s *goquery.Selection) {
		q := strings.TrimSpace(s.Text())
		if q != "" {
			page.Metadata.RelatedQuestions = append(page.Metadata.RelatedQuestions, q)
		}
	})
	if len(page.Metadata.RelatedQuestions) > 0 {
		page.Metadata.RelatedQuestionsPosition = blockPosition(doc, "div.related-questions")
	}

	doc.Find("div.sitelinks a").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		page.Metadata.SiteLinks = append(page.Metadata.SiteLinks, domain.SiteLink{
			Title: strings.TrimSpace(s.Text()),
			URL:   href,
		})
	})
	if len(page.Metadata.SiteLinks) > 0 {
		page.Metadata.SiteLinksPosition = blockPosition(doc, "div.sitelinks")
	}

	doc.Find("div.video-block div.video").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Find("a").Attr("href")
		page.Metadata.Videos = append(page.Metadata.Videos, domain.VideoResult{
			Title:  strings.TrimSpace(s.Find(".video-title").Text()),
			URL:    href,
			Source: strings.TrimSpace(s.Find(".video-source").Text()),
		})
	})
	if len(page.Metadata.Videos) > 0 {
		page.Metadata.VideosPosition = blockPosition(doc, "div.video-block")
	}

	return page
}

// blockPosition derives a block's 1-based page position from its order among
// the page's top-level sections.
func blockPosition(doc *goquery.Document, selector string) int {
	position := 0
	doc.Find("body > div").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.Is(selector) {
			position = i + 1
			return false
		}
		return true
	})
	return position
}

func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

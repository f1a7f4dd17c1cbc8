// ABOUTME: Tests for the HTML scraping results provider
// ABOUTME: Parses a fixture page and checks entry and block extraction

package scrape

import (
	"bytes"
	"context"
	"io"
	"testing"

	coreerrors "serp-insights-api/core/errors"
	"serp-insights-api/core/interfaces"
	"serp-insights-api/pkg/config"
)

type noopLogger struct{}

func (noopLogger) Debug(string, map[string]interface{}) {}
func (noopLogger) Info(string, map[string]interface{})  {}
func (noopLogger) Warn(string, map[string]interface{})  {}
func (noopLogger) Error(string, map[string]interface{}) {}

type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (c *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return c.getFunc(ctx, url)
}

func (c *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return nil, nil
}

type mockResponse struct {
	status int
	body   []byte
}

func (r *mockResponse) StatusCode() int          { return r.status }
func (r *mockResponse) Body() io.ReadCloser      { return io.NopCloser(bytes.NewReader(r.body)) }
func (r *mockResponse) Header(key string) string { return "" }

const fixturePage = `<!DOCTYPE html>
<html><body>
<div class="ad-block">
  <div class="ad">
    <a href="https://ads.example.com/1"><span class="ad-title">Funny Dad Shirt</span></a>
    <span class="ad-price">$19.99</span>
    <span class="ad-seller">TeeShop</span>
  </div>
</div>
<div class="answer-box">
  <p class="answer-text">A dad shirt is a relaxed-fit tee.</p>
  <span class="answer-source">example.com</span>
</div>
<div class="result">
  <h3><a href="https://www.etsy.com/listing/1">Buy Funny Dad Shirt</a></h3>
  <p class="snippet">Shop funny dad shirts on sale</p>
</div>
<div class="result">
  <h3><a href="https://www.amazon.com/dp/2">Funny Dad Tees</a></h3>
  <p class="snippet">Prime shipping on dad tees</p>
</div>
<div class="result">
  <h3><a href="">Broken entry without a link</a></h3>
</div>
<div class="related-questions">
  <ul><li>what is a dad shirt</li><li>where to buy dad shirts</li></ul>
</div>
</body></html>`

func newTestProvider(t *testing.T, client interfaces.HTTPClient) *Provider {
	t.Helper()
	p, err := NewProvider(config.ProviderConfig{BaseURL: "https://results.internal/search"}, client, noopLogger{})
	if err != nil {
		t.Fatalf("provider construction failed: %v", err)
	}
	return p
}

func TestFetch_ParsesFixturePage(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{status: 200, body: []byte(fixturePage)}, nil
		},
	}
	p := newTestProvider(t, client)

	page, err := p.Fetch(context.Background(), "funny dad shirt", 10)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if len(page.Entries) != 2 {
		t.Fatalf("expected 2 valid entries, got %d", len(page.Entries))
	}
	first := page.Entries[0]
	if first.Title != "Buy Funny Dad Shirt" {
		t.Errorf("unexpected title: %q", first.Title)
	}
	if first.Domain != "etsy.com" {
		t.Errorf("unexpected domain: %q", first.Domain)
	}
	if first.Description != "Shop funny dad shirts on sale" {
		t.Errorf("unexpected description: %q", first.Description)
	}

	if len(page.Metadata.PaidListings) != 1 {
		t.Fatalf("expected 1 paid listing, got %d", len(page.Metadata.PaidListings))
	}
	ad := page.Metadata.PaidListings[0]
	if ad.Price != "$19.99" || ad.Seller != "TeeShop" {
		t.Errorf("unexpected paid listing: %+v", ad)
	}
	if page.Metadata.PaidListingsPosition != 1 {
		t.Errorf("expected the ad block at position 1, got %d", page.Metadata.PaidListingsPosition)
	}

	if page.Metadata.DirectAnswer == nil {
		t.Fatal("expected a direct answer")
	}
	if page.Metadata.DirectAnswer.Content != "A dad shirt is a relaxed-fit tee." {
		t.Errorf("unexpected answer content: %q", page.Metadata.DirectAnswer.Content)
	}

	if len(page.Metadata.RelatedQuestions) != 2 {
		t.Errorf("expected 2 related questions, got %d", len(page.Metadata.RelatedQuestions))
	}
}

func TestFetch_RespectsMaxResults(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{status: 200, body: []byte(fixturePage)}, nil
		},
	}
	p := newTestProvider(t, client)

	page, err := p.Fetch(context.Background(), "funny dad shirt", 1)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(page.Entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(page.Entries))
	}
}

func TestFetch_ErrorStatusMapping(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{status: 503, body: nil}, nil
		},
	}
	p := newTestProvider(t, client)

	_, err := p.Fetch(context.Background(), "funny dad shirt", 10)
	if !coreerrors.IsTransient(err) {
		t.Errorf("expected a transient error for 503, got %v", err)
	}

	client.getFunc = func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{status: 403, body: nil}, nil
	}
	_, err = p.Fetch(context.Background(), "funny dad shirt", 10)
	if !coreerrors.IsPermanent(err) {
		t.Errorf("expected a permanent error for 403, got %v", err)
	}
}

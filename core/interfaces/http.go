package interfaces

import (
	"context"
	"io"
)

// HTTPClient defines the interface for making HTTP requests. The abstraction
// keeps provider implementations mockable and lets retry policy live in the
// pipeline rather than the transport.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	Get(ctx context.Context, url string) (Response, error)

	// Post performs an HTTP POST request to the specified URL with the given body.
	Post(ctx context.Context, url string, body io.Reader) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body as an io.ReadCloser.
	// The caller is responsible for closing the body when done.
	Body() io.ReadCloser

	// Header returns the value of the specified header, case-insensitively.
	// Returns an empty string if the header is not present.
	Header(key string) string
}

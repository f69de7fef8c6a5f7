// Package http provides HTTP-based implementations of docurag.Fetcher and
// docurag.SitemapService for static documentation sites.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/mr-aymann/docuRAG"
)

// Default timeouts for page fetches.
const (
	// DefaultConnectTimeout bounds the wait for response headers.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultFetchTimeout bounds the whole request including body read.
	DefaultFetchTimeout = 30 * time.Second
)

// Ensure Fetcher implements docurag.Fetcher at compile time.
var _ docurag.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// It does not execute JavaScript.
type Fetcher struct {
	client         *http.Client
	connectTimeout time.Duration
	fetchTimeout   time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithConnectTimeout sets the response-header timeout.
// Defaults to DefaultConnectTimeout.
func WithConnectTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.connectTimeout = d
	}
}

// WithFetchTimeout sets the total request timeout.
// Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithClient replaces the underlying HTTP client. Timeout options are
// ignored when a client is provided. Intended for tests.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		connectTimeout: DefaultConnectTimeout,
		fetchTimeout:   DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.ResponseHeaderTimeout = f.connectTimeout
		f.client = &http.Client{
			Timeout:   f.fetchTimeout,
			Transport: transport,
		}
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Client errors (4xx)
// are reported as EINVALID since they are not expected to resolve on retry;
// server errors (5xx) and transport failures are EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", docurag.Errorf(docurag.EINVALID, "invalid URL %q: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", docurag.Errorf(docurag.EUNAVAILABLE, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Proceed.
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", docurag.Errorf(docurag.EINVALID, "HTTP %d for %s", resp.StatusCode, url)
	default:
		return "", docurag.Errorf(docurag.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", docurag.Errorf(docurag.EUNAVAILABLE, "reading %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. A no-op for the HTTP fetcher.
func (f *Fetcher) Close() error {
	return nil
}

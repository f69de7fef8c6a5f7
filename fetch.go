package docurag

import "context"

// Fetcher retrieves raw HTML from a single URL.
type Fetcher interface {
	// Fetch returns the response body for the URL. Errors carry an
	// application code: EINVALID for client errors that will not resolve
	// on retry (4xx), EUNAVAILABLE for transient failures (5xx, network).
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// PageResult is the outcome of fetching one URL. Exactly one result is
// emitted per freshly submitted URL; per-URL failures are delivered in Err
// rather than propagated.
type PageResult struct {
	URL  string
	HTML string
	Err  error
}

// PageSource fetches batches of URLs with bounded concurrency.
type PageSource interface {
	// FetchAll submits the URLs and returns a channel of results in
	// completion order (not submission order). The channel is closed once
	// every fresh URL has produced exactly one result. URLs already
	// processed by an earlier call are skipped, so overlapping batches do
	// not refetch. FetchAll never blocks the caller: results must be
	// drained until the channel closes.
	FetchAll(ctx context.Context, urls []string) <-chan PageResult
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

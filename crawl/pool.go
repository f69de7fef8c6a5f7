package crawl

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/mr-aymann/docuRAG"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs fetched in parallel by a Pool.
const DefaultConcurrency = 5

// Ensure Pool implements docurag.PageSource at compile time.
var _ docurag.PageSource = (*Pool)(nil)

// Pool fetches batches of URLs with bounded concurrency, per-URL retry and
// cross-batch deduplication. A URL is fetched at most once over the lifetime
// of the pool, so overlapping batches do not refetch.
type Pool struct {
	Fetcher     docurag.Fetcher
	Limiter     docurag.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration

	mu   sync.Mutex
	seen map[string]bool
}

// NewPool creates a Pool around the given fetcher.
func NewPool(fetcher docurag.Fetcher, opts ...PoolOption) *Pool {
	p := &Pool{
		Fetcher:     fetcher,
		Concurrency: DefaultConcurrency,
		seen:        make(map[string]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.Concurrency <= 0 {
		p.Concurrency = DefaultConcurrency
	}
	return p
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithConcurrency sets the number of parallel fetches.
func WithConcurrency(n int) PoolOption {
	return func(p *Pool) { p.Concurrency = n }
}

// WithLimiter sets a per-domain rate limiter applied before each fetch.
func WithLimiter(l docurag.DomainLimiter) PoolOption {
	return func(p *Pool) { p.Limiter = l }
}

// WithRetryDelays sets the backoff delays for fetch retries.
func WithRetryDelays(delays []time.Duration) PoolOption {
	return func(p *Pool) { p.RetryDelays = delays }
}

// FetchAll submits the URLs and returns a channel of results in completion
// order. URLs already processed by an earlier call are skipped. The channel
// is buffered for the whole batch and closed once every fresh URL has
// produced exactly one result, so FetchAll never blocks the caller.
func (p *Pool) FetchAll(ctx context.Context, urls []string) <-chan docurag.PageResult {
	// Mark fresh URLs as seen at dispatch so a concurrent overlapping batch
	// cannot claim them too.
	p.mu.Lock()
	fresh := make([]string, 0, len(urls))
	for _, u := range urls {
		if p.seen[u] {
			continue
		}
		p.seen[u] = true
		fresh = append(fresh, u)
	}
	p.mu.Unlock()

	results := make(chan docurag.PageResult, len(fresh))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Concurrency)

	go func() {
		for _, u := range fresh {
			u := u
			g.Go(func() error {
				results <- p.fetchOne(gctx, u)
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	return results
}

// fetchOne fetches a single URL, applying rate limiting and retry.
func (p *Pool) fetchOne(ctx context.Context, rawURL string) docurag.PageResult {
	result := docurag.PageResult{URL: rawURL}

	if p.Limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			result.Err = docurag.Errorf(docurag.EINVALID, "invalid URL %q: %v", rawURL, err)
			return result
		}
		if err := p.Limiter.Wait(ctx, u.Host); err != nil {
			result.Err = err
			return result
		}
	}

	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	html, err := FetchWithRetryDelays(ctx, rawURL, p.Fetcher.Fetch, nil, delays)
	if err != nil {
		result.Err = err
		return result
	}

	result.HTML = html
	return result
}

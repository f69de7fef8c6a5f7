package crawl

import (
	"context"
	"net/url"
	"time"

	"github.com/mr-aymann/docuRAG"
)

// Frontier configuration for link-following discovery.
const (
	// DefaultMaxPages bounds discovery when the caller does not set a limit.
	DefaultMaxPages = 100

	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
)

// Ensure Discoverer implements docurag.URLDiscoverer at compile time.
var _ docurag.URLDiscoverer = (*Discoverer)(nil)

// Discoverer resolves a seed URL into the set of page URLs to ingest.
// Sitemap discovery is tried first; when the site advertises no sitemap it
// falls back to breadth-first link-following from the seed page.
type Discoverer struct {
	Sitemaps    docurag.SitemapService
	Fetcher     docurag.Fetcher
	Links       docurag.LinkExtractor
	Limiter     docurag.DomainLimiter
	RetryDelays []time.Duration
}

// Discover returns an ordered, deduplicated set of page URLs for the seed,
// capped at maxPages (DefaultMaxPages when maxPages <= 0). Per-candidate
// failures are swallowed; total failure yields an empty set and no error.
func (d *Discoverer) Discover(ctx context.Context, seedURL string, maxPages int) ([]string, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	urls, err := d.Sitemaps.DiscoverURLs(ctx, seedURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		urls = nil
	}
	if len(urls) > 0 {
		if len(urls) > maxPages {
			urls = urls[:maxPages]
		}
		return urls, nil
	}

	return d.bfs(ctx, seedURL, maxPages)
}

// bfs walks same-host links breadth-first starting from the seed page. Pages
// that fail to fetch or parse are skipped; the walk is bounded by maxPages
// successfully fetched pages.
func (d *Discoverer) bfs(ctx context.Context, seedURL string, maxPages int) ([]string, error) {
	seed, err := url.Parse(seedURL)
	if err != nil {
		return nil, docurag.Errorf(docurag.EINVALID, "invalid seed URL %q: %v", seedURL, err)
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(seedURL)

	delays := d.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	found := []string{}
	for len(found) < maxPages {
		pageURL, ok := frontier.Pop()
		if !ok {
			break
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if d.Limiter != nil {
			if err := d.Limiter.Wait(ctx, seed.Host); err != nil {
				return nil, err
			}
		}

		html, err := FetchWithRetryDelays(ctx, pageURL, d.Fetcher.Fetch, nil, delays)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		found = append(found, pageURL)

		links, err := d.Links.ExtractLinks(html, pageURL)
		if err != nil {
			continue
		}
		for _, link := range links {
			// The link extractor already restricts to the page's host, which
			// equals the seed's host for every page reached from the seed.
			frontier.Push(link)
		}
	}

	return found, nil
}

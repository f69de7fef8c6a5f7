package docurag

import "context"

// URLDiscoverer resolves a seed site URL into the set of pages to ingest.
type URLDiscoverer interface {
	// Discover returns an ordered, deduplicated set of page URLs for the
	// seed. Implementations try sitemaps first and fall back to bounded
	// same-domain link-following. Per-candidate failures are swallowed;
	// total failure yields an empty set and no error.
	Discover(ctx context.Context, seedURL string, maxPages int) ([]string, error)
}

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds all URLs advertised by a site's sitemaps. It
	// probes a fixed list of well-known sitemap paths plus robots.txt
	// Sitemap: directives, accepting the first HTTP 200 response whose
	// root element is urlset or sitemapindex (namespace-agnostic).
	// Sitemap indexes are resolved recursively with cycle protection.
	// Returns an empty slice when no sitemap is found.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}

// LinkExtractor extracts same-host links from an HTML page for
// link-following discovery.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns absolute URLs whose resolved
	// host matches the base URL's host, in document order, deduplicated,
	// with fragments stripped.
	ExtractLinks(html string, baseURL string) ([]string, error)
}

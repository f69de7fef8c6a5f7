package mock

import (
	"context"

	"github.com/mr-aymann/docuRAG"
)

var _ docurag.URLDiscoverer = (*URLDiscoverer)(nil)

// URLDiscoverer is a mock implementation of docurag.URLDiscoverer.
type URLDiscoverer struct {
	DiscoverFn func(ctx context.Context, seedURL string, maxPages int) ([]string, error)
}

func (d *URLDiscoverer) Discover(ctx context.Context, seedURL string, maxPages int) ([]string, error) {
	return d.DiscoverFn(ctx, seedURL, maxPages)
}

var _ docurag.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of docurag.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}

var _ docurag.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of docurag.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (le *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return le.ExtractLinksFn(html, baseURL)
}

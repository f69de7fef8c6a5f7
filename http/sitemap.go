package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/mr-aymann/docuRAG"
)

// sitemapCandidates are the well-known sitemap locations probed in order,
// before falling back to robots.txt directives.
var sitemapCandidates = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/sitemap1.xml",
	"/sitemap/sitemap.xml",
}

// Ensure SitemapService implements docurag.SitemapService.
var _ docurag.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds all URLs advertised by the site's sitemaps. Candidate
// locations are probed in order (well-known paths first, then robots.txt
// Sitemap: directives); the first candidate that parses as a urlset or
// sitemapindex wins. Nested indexes are resolved recursively with a visited
// set bounding recursion. Errors on individual candidates are swallowed and
// the next candidate tried. Returns an empty slice (not nil) when no sitemap
// is found.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docurag.Errorf(docurag.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	// Sitemaps live at the domain root regardless of the seed's path.
	root := *base
	root.Path = ""

	var candidates []string
	for _, p := range sitemapCandidates {
		candidates = append(candidates, root.ResolveReference(&url.URL{Path: p}).String())
	}
	candidates = append(candidates, s.sitemapsFromRobots(ctx, &root)...)

	seenSitemaps := make(map[string]bool)
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		urls, err := s.processSitemap(ctx, candidate, seenSitemaps)
		if err != nil {
			// Malformed XML or a network failure on one candidate is not
			// fatal; try the next location.
			continue
		}
		if len(urls) == 0 {
			continue
		}
		return dedupe(urls), nil
	}

	return []string{}, nil
}

// sitemapsFromRobots extracts Sitemap: directives from the site's
// robots.txt. Failures yield no candidates.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, root *url.URL) []string {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	body, err := s.fetchURL(ctx, robotsURL)
	if err != nil {
		return nil
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
				sitemaps = append(sitemaps, u)
			}
		}
	}
	return sitemaps
}

// processSitemap fetches and parses one sitemap document, handling both
// urlset and sitemapindex roots. The root element is matched by tag name
// only, so any sitemap namespace variant is accepted.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Cycle protection: never process the same sitemap twice.
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, docurag.Errorf(docurag.EINVALID, "parsing sitemap XML at %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, docurag.Errorf(docurag.EINVALID, "empty sitemap XML at %s", sitemapURL)
	}

	switch root.Tag {
	case "sitemapindex":
		return s.processIndex(ctx, root, seen)
	case "urlset":
		return parseURLSet(root), nil
	default:
		return nil, docurag.Errorf(docurag.EINVALID, "unrecognized sitemap root element %q", root.Tag)
	}
}

// processIndex resolves each nested sitemap of a <sitemapindex> and unions
// their URL sets. A failing nested sitemap is skipped, not fatal.
func (s *SitemapService) processIndex(ctx context.Context, root *etree.Element, seen map[string]bool) ([]string, error) {
	var all []string
	for _, sm := range root.SelectElements("sitemap") {
		loc := sm.SelectElement("loc")
		if loc == nil {
			continue
		}
		nested := strings.TrimSpace(loc.Text())
		if nested == "" {
			continue
		}

		urls, err := s.processSitemap(ctx, nested, seen)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		all = append(all, urls...)
	}
	return all, nil
}

// parseURLSet extracts page URLs from a <urlset> element.
func parseURLSet(root *etree.Element) []string {
	var urls []string
	for _, el := range root.SelectElements("url") {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// fetchURL fetches a URL and returns the response body for 200 responses.
func (s *SitemapService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, docurag.Errorf(docurag.EINVALID, "creating request for %s: %v", targetURL, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, docurag.Errorf(docurag.EUNAVAILABLE, "fetching %s: %v", targetURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, docurag.Errorf(docurag.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}

// dedupe removes duplicate URLs preserving first-occurrence order.
func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := urls[:0]
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

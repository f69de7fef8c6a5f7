// Package goquery provides HTML content extraction and link discovery built
// on the goquery DOM library.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mr-aymann/docuRAG"
)

// contentSelectors are tried in order to locate the main content container.
// Documentation sites overwhelmingly use one of these; body is the fallback.
var contentSelectors = []string{
	"main",
	"article",
	"#content",
	".content",
	"[role=main]",
}

// noiseSelector matches elements stripped from the content container before
// extraction: navigation chrome, scripts and styling carry no documentation
// text.
const noiseSelector = "script, style, nav, footer, header, aside"

// Ensure Extractor implements docurag.Extractor at compile time.
var _ docurag.Extractor = (*Extractor)(nil)

// Extractor pulls the main content region out of a documentation page using
// CSS selectors.
type Extractor struct{}

// NewExtractor creates a new selector-based Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract locates the main content container of the page, strips noise
// elements, and returns the remaining HTML together with the page title.
// A page with no text content after cleaning is rejected with EINVALID.
func (e *Extractor) Extract(html string) (*docurag.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docurag.Errorf(docurag.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = docurag.NoTitle
	}

	container := doc.Find("body")
	for _, sel := range contentSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			container = found.First()
			break
		}
	}

	container.Find(noiseSelector).Remove()

	if strings.TrimSpace(container.Text()) == "" {
		return nil, docurag.Errorf(docurag.EINVALID, "no text content after cleaning")
	}

	contentHTML, err := goquery.OuterHtml(container)
	if err != nil {
		return nil, docurag.Errorf(docurag.EINTERNAL, "failed to render content HTML: %v", err)
	}

	return &docurag.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
	}, nil
}

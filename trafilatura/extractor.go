// Package trafilatura provides content extraction backed by go-trafilatura's
// boilerplate-removal heuristics, as an alternative to selector-based
// extraction for pages with unusual markup.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/mr-aymann/docuRAG"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docurag.Extractor at compile time.
var _ docurag.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. Pages from which
// trafilatura can recover no content are rejected with EINVALID.
func (e *Extractor) Extract(rawHTML string) (*docurag.ExtractResult, error) {
	if rawHTML == "" {
		return nil, docurag.Errorf(docurag.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, docurag.Errorf(docurag.EINVALID, "extracting content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, docurag.Errorf(docurag.EINTERNAL, "rendering content: %v", err)
		}
	}
	if strings.TrimSpace(contentHTML) == "" {
		return nil, docurag.Errorf(docurag.EINVALID, "no content extracted")
	}

	title := result.Metadata.Title
	if title == "" {
		title = docurag.NoTitle
	}

	return &docurag.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

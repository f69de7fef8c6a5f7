package docurag

// NoTitle is the title assigned to pages whose document title is absent.
const NoTitle = "No Title"

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the document title, or NoTitle if absent.
	Title string

	// ContentHTML is the main content as clean HTML with navigational
	// boilerplate (nav, footer, header, aside, script, style) removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content. Returns an
	// EINVALID error when no content remains after cleaning; callers treat
	// such pages as skippable, not as job failures.
	Extract(html string) (*ExtractResult, error)
}

// Converter converts clean HTML to Markdown. The markdown's headings are
// what the chunker annotates chunks with.
type Converter interface {
	Convert(html string) (string, error)
}

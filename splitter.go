package docurag

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Default window parameters for splitting page text into chunks.
const (
	DefaultChunkSize    = 2000
	DefaultChunkOverlap = 200
)

// Heading is a markdown heading found in page text, with its character
// offset in the original text.
type Heading struct {
	Level  int
	Title  string
	Offset int
}

// headingRe matches markdown headings H1-H6 at the start of a line.
var headingRe = regexp.MustCompile(`(?m)^(#{1,6})[ \t]+(.+)$`)

// ExtractHeadings scans markdown text and returns all headings in document
// order with their byte offsets. Offsets refer to the original text, so they
// can be compared against chunk start offsets.
func ExtractHeadings(text string) []Heading {
	matches := headingRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	headings := make([]Heading, 0, len(matches))
	for _, m := range matches {
		headings = append(headings, Heading{
			Level:  m[3] - m[2],
			Title:  strings.TrimSpace(text[m[4]:m[5]]),
			Offset: m[0],
		})
	}
	return headings
}

// NearestHeading returns the title of the nearest heading whose offset is at
// or before the given offset, or UntitledChunk if no heading precedes it.
func NearestHeading(headings []Heading, offset int) string {
	title := UntitledChunk
	for _, h := range headings {
		if h.Offset > offset {
			break
		}
		title = h.Title
	}
	return title
}

// SplitText splits text into overlapping windows of roughly size bytes with
// the given overlap, preferring natural break boundaries (paragraph, then
// sentence, then line, then word) over hard cuts. Windows are trimmed of
// surrounding whitespace; windows that trim to nothing are dropped.
// Empty or whitespace-only input yields nil.
func SplitText(text string, size, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	var windows []string
	n := len(text)
	start := 0
	for start < n {
		end := start + size
		if end >= n {
			if w := strings.TrimSpace(text[start:]); w != "" {
				windows = append(windows, w)
			}
			break
		}

		cut := breakPoint(text, start, end)
		if w := strings.TrimSpace(text[start:cut]); w != "" {
			windows = append(windows, w)
		}

		next := cut - overlap
		if next <= start {
			// Overlap would stall the scan; advance past the cut instead.
			next = cut
		}
		start = next
	}
	return windows
}

// breakSeqs lists boundary markers in preference order.
var breakSeqs = []string{"\n\n", ". ", "\n", " "}

// breakPoint returns the cut position for a window starting at start with a
// hard limit of end. It searches the second half of the window for the most
// preferred boundary, so cuts never produce windows smaller than half the
// target size.
func breakPoint(text string, start, end int) int {
	floor := start + (end-start)/2
	window := text[floor:end]
	for _, seq := range breakSeqs {
		if i := strings.LastIndex(window, seq); i >= 0 {
			return floor + i + len(seq)
		}
	}
	return end
}

// Chunker splits page text into header-annotated chunks. The zero value
// uses DefaultChunkSize and DefaultChunkOverlap.
type Chunker struct {
	Size    int
	Overlap int
}

// ChunkPage splits markdown text into overlapping chunks and annotates each
// with the nearest preceding heading, a stable zero-based chunk index, and
// source provenance. Empty or whitespace-only input yields an empty slice.
//
// Chunk index sequences are contiguous from 0 and deterministic for a given
// (text, sourceURL) pair.
func (c *Chunker) ChunkPage(text, sourceURL, siteID string, now time.Time) []*Chunk {
	size := c.Size
	if size <= 0 {
		size = DefaultChunkSize
	}
	overlap := c.Overlap
	if overlap <= 0 {
		overlap = DefaultChunkOverlap
	}

	windows := SplitText(text, size, overlap)
	if len(windows) == 0 {
		return nil
	}

	headings := ExtractHeadings(text)

	var urlPath string
	if u, err := url.Parse(sourceURL); err == nil {
		urlPath = u.Path
	}

	chunks := make([]*Chunk, 0, len(windows))
	searchFrom := 0
	for i, w := range windows {
		// Locate the window's first unconsumed occurrence in the original
		// text so repeated substrings map to increasing offsets. Advancing
		// by one (not the window length) keeps overlapping windows findable.
		offset := searchFrom
		if idx := strings.Index(text[searchFrom:], w); idx >= 0 {
			offset = searchFrom + idx
			searchFrom = offset + 1
		}

		chunks = append(chunks, &Chunk{
			SourceURL:  sourceURL,
			SiteID:     siteID,
			ChunkIndex: i,
			Text:       w,
			Title:      NearestHeading(headings, offset),
			URLPath:    urlPath,
			CreatedAt:  now,
		})
	}
	return chunks
}

package docurag

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// sourcePreviewLen bounds the preview attached to a chat source.
const sourcePreviewLen = 200

// FormatChunks formats retrieved chunks as LLM context. Each chunk is
// labeled with its ordinal, title and source URL. Chunks are separated by
// blank lines.
func FormatChunks(chunks []*Chunk) string {
	if len(chunks) == 0 {
		return ""
	}

	parts := make([]string, 0, len(chunks))
	for i, c := range chunks {
		title := c.Title
		if title == "" {
			title = UntitledChunk
		}
		parts = append(parts, fmt.Sprintf("Source %d (%s - %s):\n%s", i+1, title, c.SourceURL, c.Text))
	}

	return strings.Join(parts, "\n\n")
}

// ChunkSources converts retrieved chunks into chat sources with truncated
// previews.
func ChunkSources(chunks []*Chunk) []Source {
	if len(chunks) == 0 {
		return nil
	}

	sources := make([]Source, 0, len(chunks))
	for _, c := range chunks {
		sources = append(sources, Source{
			Title:      c.Title,
			URL:        c.SourceURL,
			ChunkIndex: c.ChunkIndex,
			Preview:    truncate(c.Text, sourcePreviewLen),
		})
	}
	return sources
}

// truncate shortens s to at most n bytes on a rune boundary, appending an
// ellipsis when content was dropped.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

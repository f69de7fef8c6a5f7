package docurag

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// UntitledChunk is the title assigned to chunks with no preceding heading.
const UntitledChunk = "Untitled"

// Chunk is a bounded span of a source page's text, embedded and stored as
// one retrievable unit.
type Chunk struct {
	// Page the chunk came from.
	SourceURL string `json:"source_url"`

	// Site the page belongs to. Denormalized so that deleting a site can
	// remove every chunk it owns, not just chunks of the seed page.
	SiteID string `json:"site_id,omitempty"`

	// Zero-based sequence position within the page. Stable across
	// re-ingestion of identical content.
	ChunkIndex int `json:"chunk_index"`

	Text string `json:"text"`

	// Nearest preceding heading, or UntitledChunk if none precedes it.
	Title string `json:"title"`

	// Path component of SourceURL, stored for filtering.
	URLPath string `json:"url_path,omitempty"`

	// Set at embedding time.
	CreatedAt time.Time `json:"created_at"`

	Embedding []float32 `json:"embedding,omitempty"`
}

// ChunkKey identifies a chunk uniquely within the store at any point in time.
type ChunkKey struct {
	SourceURL  string
	ChunkIndex int
}

// Key returns the chunk's store-uniqueness key.
func (c *Chunk) Key() ChunkKey {
	return ChunkKey{SourceURL: c.SourceURL, ChunkIndex: c.ChunkIndex}
}

// ID returns a deterministic identifier derived from the chunk key.
// Re-embedding the same page yields the same IDs, so an upsert after a
// partial failure overwrites rather than duplicates.
func (c *Chunk) ID() string {
	h := xxhash.Sum64String(fmt.Sprintf("%s#%d", c.SourceURL, c.ChunkIndex))
	return fmt.Sprintf("%016x", h)
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.SourceURL == "" {
		return Errorf(EINVALID, "chunk source URL required")
	}
	if c.ChunkIndex < 0 {
		return Errorf(EINVALID, "chunk index must be non-negative")
	}
	if c.Text == "" {
		return Errorf(EINVALID, "chunk text required")
	}
	return nil
}

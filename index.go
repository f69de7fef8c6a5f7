package docurag

import "context"

// VectorIndex wraps the vector store's insert, query and delete operations.
// Implementations must make successful upserts observable by searches before
// returning (performing a refresh/commit if the underlying engine needs one).
type VectorIndex interface {
	// Upsert writes chunks (text + embedding + metadata) to the index and
	// returns the number actually written. Partial writes within a batch
	// are acceptable but the returned count must be accurate. Returns an
	// EUNAVAILABLE error if the index is unreachable.
	Upsert(ctx context.Context, chunks []*Chunk) (int, error)

	// DeleteBySource removes all chunks whose source URL matches exactly.
	// Must be called before re-inserting chunks for a re-crawled source.
	DeleteBySource(ctx context.Context, sourceURL string) error

	// DeleteBySite removes all chunks owned by a site.
	DeleteBySite(ctx context.Context, siteID string) error

	// Clear drops the entire collection and reinitializes it empty.
	Clear(ctx context.Context) error

	// SearchByText runs a lexical-style similarity query over raw query
	// text. An empty corpus yields an empty result, not an error.
	SearchByText(ctx context.Context, query string, k int) ([]*Chunk, error)

	// SearchByVector runs a vector similarity query.
	SearchByVector(ctx context.Context, vector []float32, k int) ([]*Chunk, error)

	// Ping reports whether the underlying index is reachable. Returns an
	// EUNAVAILABLE error when it is not.
	Ping(ctx context.Context) error
}

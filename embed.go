package docurag

import "context"

// Embedder produces fixed-length vectors in a shared embedding space.
type Embedder interface {
	// Embed returns the embedding for document text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedQuery returns the embedding for query text, in the same space
	// as stored document vectors.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Package gemini implements embedding and chat over the Google Gemini API.
package gemini

import (
	"context"

	"github.com/mr-aymann/docuRAG"
	"google.golang.org/genai"
)

const embeddingModel = "gemini-embedding-001"

// Ensure Embedder implements docurag.Embedder at compile time.
var _ docurag.Embedder = (*Embedder)(nil)

// Embedder produces embeddings using Gemini. Document and query text are
// embedded with their respective task types so both live in the same
// retrieval-optimized space.
type Embedder struct {
	client *genai.Client
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client) *Embedder {
	return &Embedder{client: client}
}

// Embed returns the embedding for document text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text, "RETRIEVAL_DOCUMENT")
}

// EmbedQuery returns the embedding for query text.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text, "RETRIEVAL_QUERY")
}

func (e *Embedder) embed(ctx context.Context, text, taskType string) ([]float32, error) {
	if text == "" {
		return nil, docurag.Errorf(docurag.EINVALID, "text required")
	}

	result, err := e.client.Models.EmbedContent(ctx, embeddingModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: text}},
		}},
		&genai.EmbedContentConfig{TaskType: taskType},
	)
	if err != nil {
		return nil, docurag.Errorf(docurag.EUNAVAILABLE, "embedding request failed: %v", err)
	}
	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, docurag.Errorf(docurag.EINTERNAL, "gemini returned no embedding")
	}

	return result.Embeddings[0].Values, nil
}

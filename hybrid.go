package docurag

import "context"

// Retriever finds the chunks most relevant to a query.
type Retriever interface {
	// Search returns up to k chunks, best first. Returns fewer than k when
	// the corpus has fewer matching chunks and never errors on an empty
	// corpus.
	Search(ctx context.Context, query string, k int) ([]*Chunk, error)
}

// Ensure HybridRetriever implements Retriever at compile time.
var _ Retriever = (*HybridRetriever)(nil)

// HybridRetriever combines two independent retrieval signals: a lexical
// query over the raw query text and a vector similarity query over the
// query's embedding. Results are unioned rather than intersected to maximize
// recall; downstream the LLM reads the returned chunks as unordered context,
// so ranking purity matters less than coverage.
type HybridRetriever struct {
	Index    VectorIndex
	Embedder Embedder
}

// NewHybridRetriever creates a HybridRetriever.
func NewHybridRetriever(index VectorIndex, embedder Embedder) *HybridRetriever {
	return &HybridRetriever{Index: index, Embedder: embedder}
}

// Search issues both queries at top-2k, concatenates lexical results first,
// deduplicates by (source URL, chunk index) keeping the first occurrence,
// and truncates to k.
func (r *HybridRetriever) Search(ctx context.Context, query string, k int) ([]*Chunk, error) {
	if k <= 0 {
		return nil, Errorf(EINVALID, "k must be positive")
	}

	lexical, err := r.Index.SearchByText(ctx, query, 2*k)
	if err != nil {
		return nil, err
	}

	vector, err := r.Embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	semantic, err := r.Index.SearchByVector(ctx, vector, 2*k)
	if err != nil {
		return nil, err
	}

	seen := make(map[ChunkKey]bool)
	results := make([]*Chunk, 0, k)
	for _, c := range append(lexical, semantic...) {
		key := c.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		results = append(results, c)
		if len(results) >= k {
			break
		}
	}
	return results, nil
}

package elasticsearch_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/mr-aymann/docuRAG"
	"github.com/mr-aymann/docuRAG/elasticsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a local Elasticsearch and skip when none is
// available. Set DOCURAG_ES_TEST_ADDR to point at a different cluster.

func testAddr() string {
	if addr := os.Getenv("DOCURAG_ES_TEST_ADDR"); addr != "" {
		return addr
	}
	return "http://localhost:9200"
}

func newTestIndex(t *testing.T, name string) *elasticsearch.Index {
	t.Helper()

	idx, err := elasticsearch.NewIndex(elasticsearch.Config{
		Addresses: []string{testAddr()},
		Index:     name,
		Dims:      4,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := idx.Ping(ctx); err != nil {
		t.Skipf("skipping: elasticsearch not available: %v", err)
	}

	require.NoError(t, idx.Clear(context.Background()))
	return idx
}

func testChunk(sourceURL, siteID string, index int, text string) *docurag.Chunk {
	return &docurag.Chunk{
		SourceURL:  sourceURL,
		SiteID:     siteID,
		ChunkIndex: index,
		Text:       text,
		Title:      "Test Heading",
		CreatedAt:  time.Now().UTC(),
		Embedding:  []float32{0.1, 0.2, 0.3, 0.4},
	}
}

func TestIndex_UpsertAndSearchByText(t *testing.T) {
	idx := newTestIndex(t, "docurag-test-upsert")
	ctx := context.Background()

	n, err := idx.Upsert(ctx, []*docurag.Chunk{
		testChunk("https://example.com/a", "site-1", 0, "goroutines are lightweight threads"),
		testChunk("https://example.com/a", "site-1", 1, "channels communicate between goroutines"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	chunks, err := idx.SearchByText(ctx, "goroutines", 10)
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
}

func TestIndex_UpsertIsIdempotent(t *testing.T) {
	idx := newTestIndex(t, "docurag-test-idempotent")
	ctx := context.Background()

	chunk := testChunk("https://example.com/a", "site-1", 0, "repeatable content")

	_, err := idx.Upsert(ctx, []*docurag.Chunk{chunk})
	require.NoError(t, err)
	_, err = idx.Upsert(ctx, []*docurag.Chunk{chunk})
	require.NoError(t, err)

	chunks, err := idx.SearchByText(ctx, "repeatable", 10)
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}

func TestIndex_SearchByVector(t *testing.T) {
	idx := newTestIndex(t, "docurag-test-vector")
	ctx := context.Background()

	a := testChunk("https://example.com/a", "site-1", 0, "first chunk")
	a.Embedding = []float32{1, 0, 0, 0}
	b := testChunk("https://example.com/b", "site-1", 0, "second chunk")
	b.Embedding = []float32{0, 1, 0, 0}

	_, err := idx.Upsert(ctx, []*docurag.Chunk{a, b})
	require.NoError(t, err)

	chunks, err := idx.SearchByVector(ctx, []float32{1, 0, 0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "https://example.com/a", chunks[0].SourceURL)
}

func TestIndex_DeleteBySource(t *testing.T) {
	idx := newTestIndex(t, "docurag-test-delsource")
	ctx := context.Background()

	_, err := idx.Upsert(ctx, []*docurag.Chunk{
		testChunk("https://example.com/a", "site-1", 0, "page a content"),
		testChunk("https://example.com/b", "site-1", 0, "page b content"),
	})
	require.NoError(t, err)

	require.NoError(t, idx.DeleteBySource(ctx, "https://example.com/a"))

	chunks, err := idx.SearchByText(ctx, "content", 10)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "https://example.com/b", chunks[0].SourceURL)
}

func TestIndex_DeleteBySite(t *testing.T) {
	idx := newTestIndex(t, "docurag-test-delsite")
	ctx := context.Background()

	_, err := idx.Upsert(ctx, []*docurag.Chunk{
		testChunk("https://one.example.com/a", "site-1", 0, "site one content"),
		testChunk("https://two.example.com/a", "site-2", 0, "site two content"),
	})
	require.NoError(t, err)

	require.NoError(t, idx.DeleteBySite(ctx, "site-1"))

	chunks, err := idx.SearchByText(ctx, "content", 10)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "site-2", chunks[0].SiteID)
}

func TestIndex_Clear(t *testing.T) {
	idx := newTestIndex(t, "docurag-test-clear")
	ctx := context.Background()

	_, err := idx.Upsert(ctx, []*docurag.Chunk{
		testChunk("https://example.com/a", "site-1", 0, "clearable content"),
	})
	require.NoError(t, err)

	require.NoError(t, idx.Clear(ctx))

	chunks, err := idx.SearchByText(ctx, "clearable", 10)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

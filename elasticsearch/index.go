// Package elasticsearch implements docurag.VectorIndex on Elasticsearch,
// using BM25 for lexical queries and dense_vector kNN for semantic queries
// over the same index.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/mr-aymann/docuRAG"
)

// Defaults for index configuration.
const (
	DefaultIndexName = "docurag_chunks"

	// DefaultDims matches the output dimensionality of
	// gemini-embedding-001.
	DefaultDims = 3072
)

// Config holds Elasticsearch client configuration.
type Config struct {
	Addresses []string
	Index     string
	Username  string
	Password  string

	// Dims is the embedding dimensionality baked into the index mapping.
	Dims int
}

// Ensure Index implements docurag.VectorIndex at compile time.
var _ docurag.VectorIndex = (*Index)(nil)

// Index wraps an Elasticsearch index holding embedded documentation chunks.
type Index struct {
	es    *elasticsearch.Client
	index string
	dims  int
}

// NewIndex creates a new Index. It does not touch the cluster; call
// EnsureIndex before the first write.
func NewIndex(config Config) (*Index, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: config.Addresses,
		Username:  config.Username,
		Password:  config.Password,
	})
	if err != nil {
		return nil, docurag.Errorf(docurag.EINTERNAL, "creating elasticsearch client: %v", err)
	}

	name := config.Index
	if name == "" {
		name = DefaultIndexName
	}
	dims := config.Dims
	if dims <= 0 {
		dims = DefaultDims
	}

	return &Index{es: es, index: name, dims: dims}, nil
}

// mapping returns the index mapping. Chunk identity fields are keywords so
// delete-by-query can match them exactly; text is analyzed for BM25.
func (i *Index) mapping() string {
	return fmt.Sprintf(`{
	"mappings": {
		"properties": {
			"source_url": { "type": "keyword" },
			"site_id": { "type": "keyword" },
			"url_path": { "type": "keyword" },
			"chunk_index": { "type": "integer" },
			"text": { "type": "text", "analyzer": "english" },
			"title": { "type": "text" },
			"created_at": { "type": "date" },
			"embedding": {
				"type": "dense_vector",
				"dims": %d,
				"index": true,
				"similarity": "cosine"
			}
		}
	}
}`, i.dims)
}

// EnsureIndex creates the index with its mapping if it does not exist yet.
func (i *Index) EnsureIndex(ctx context.Context) error {
	res, err := i.es.Indices.Exists([]string{i.index}, i.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return docurag.Errorf(docurag.EUNAVAILABLE, "checking index: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}

	res, err = i.es.Indices.Create(
		i.index,
		i.es.Indices.Create.WithContext(ctx),
		i.es.Indices.Create.WithBody(strings.NewReader(i.mapping())),
	)
	if err != nil {
		return docurag.Errorf(docurag.EUNAVAILABLE, "creating index: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return docurag.Errorf(docurag.EINTERNAL, "creating index: %s", res.String())
	}
	return nil
}

// Ping reports whether the cluster is reachable.
func (i *Index) Ping(ctx context.Context) error {
	res, err := i.es.Ping(i.es.Ping.WithContext(ctx))
	if err != nil {
		return docurag.Errorf(docurag.EUNAVAILABLE, "elasticsearch is unreachable: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return docurag.Errorf(docurag.EUNAVAILABLE, "elasticsearch ping failed: %s", res.Status())
	}
	return nil
}

// bulkResponse is the subset of the Bulk API response needed to count
// successful writes.
type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		Status int `json:"status"`
	} `json:"items"`
}

// Upsert writes chunks to the index under their deterministic IDs and
// returns the number actually written. Re-upserting the same chunks
// overwrites rather than duplicates. Writes are refreshed before returning
// so searches observe them immediately.
func (i *Index) Upsert(ctx context.Context, chunks []*docurag.Chunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	for _, c := range chunks {
		if err := c.Validate(); err != nil {
			return 0, err
		}
		meta := fmt.Sprintf(`{"index":{"_id":%q}}`, c.ID())
		buf.WriteString(meta)
		buf.WriteByte('\n')
		doc, err := json.Marshal(c)
		if err != nil {
			return 0, docurag.Errorf(docurag.EINTERNAL, "marshaling chunk: %v", err)
		}
		buf.Write(doc)
		buf.WriteByte('\n')
	}

	res, err := i.es.Bulk(
		bytes.NewReader(buf.Bytes()),
		i.es.Bulk.WithContext(ctx),
		i.es.Bulk.WithIndex(i.index),
	)
	if err != nil {
		return 0, docurag.Errorf(docurag.EUNAVAILABLE, "bulk write failed: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, docurag.Errorf(docurag.EINTERNAL, "bulk write error: %s", res.String())
	}

	var br bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&br); err != nil {
		return 0, docurag.Errorf(docurag.EINTERNAL, "decoding bulk response: %v", err)
	}

	written := 0
	for _, item := range br.Items {
		for _, op := range item {
			if op.Status >= 200 && op.Status < 300 {
				written++
			}
		}
	}

	if err := i.refresh(ctx); err != nil {
		return written, err
	}
	return written, nil
}

// DeleteBySource removes all chunks whose source URL matches exactly.
func (i *Index) DeleteBySource(ctx context.Context, sourceURL string) error {
	return i.deleteByTerm(ctx, "source_url", sourceURL)
}

// DeleteBySite removes all chunks owned by a site.
func (i *Index) DeleteBySite(ctx context.Context, siteID string) error {
	return i.deleteByTerm(ctx, "site_id", siteID)
}

func (i *Index) deleteByTerm(ctx context.Context, field, value string) error {
	query := map[string]any{
		"query": map[string]any{
			"term": map[string]any{field: value},
		},
	}
	data, err := json.Marshal(query)
	if err != nil {
		return docurag.Errorf(docurag.EINTERNAL, "marshaling delete query: %v", err)
	}

	res, err := i.es.DeleteByQuery(
		[]string{i.index},
		bytes.NewReader(data),
		i.es.DeleteByQuery.WithContext(ctx),
		i.es.DeleteByQuery.WithRefresh(true),
	)
	if err != nil {
		return docurag.Errorf(docurag.EUNAVAILABLE, "delete by %s failed: %v", field, err)
	}
	defer res.Body.Close()

	// A missing index means there is nothing to delete.
	if res.StatusCode == 404 {
		return nil
	}
	if res.IsError() {
		return docurag.Errorf(docurag.EINTERNAL, "delete by %s error: %s", field, res.String())
	}
	return nil
}

// Clear drops the index and recreates it empty.
func (i *Index) Clear(ctx context.Context) error {
	res, err := i.es.Indices.Delete(
		[]string{i.index},
		i.es.Indices.Delete.WithContext(ctx),
		i.es.Indices.Delete.WithIgnoreUnavailable(true),
	)
	if err != nil {
		return docurag.Errorf(docurag.EUNAVAILABLE, "deleting index: %v", err)
	}
	res.Body.Close()

	return i.EnsureIndex(ctx)
}

// searchResponse is the subset of the Search API response needed to decode
// chunk hits.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source docurag.Chunk `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchByText runs a BM25 multi_match over chunk text and titles.
func (i *Index) SearchByText(ctx context.Context, query string, k int) ([]*docurag.Chunk, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"text", "title"},
			},
		},
		"size": k,
	}
	return i.search(ctx, body)
}

// SearchByVector runs a kNN query over chunk embeddings.
func (i *Index) SearchByVector(ctx context.Context, vector []float32, k int) ([]*docurag.Chunk, error) {
	body := map[string]any{
		"knn": map[string]any{
			"field":          "embedding",
			"query_vector":   vector,
			"k":              k,
			"num_candidates": k * 2,
		},
		"size": k,
	}
	return i.search(ctx, body)
}

func (i *Index) search(ctx context.Context, body map[string]any) ([]*docurag.Chunk, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, docurag.Errorf(docurag.EINTERNAL, "marshaling search query: %v", err)
	}

	res, err := i.es.Search(
		i.es.Search.WithContext(ctx),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(bytes.NewReader(data)),
	)
	if err != nil {
		return nil, docurag.Errorf(docurag.EUNAVAILABLE, "search failed: %v", err)
	}
	defer res.Body.Close()

	// An empty corpus (index not created yet) yields no results, not an error.
	if res.StatusCode == 404 {
		return nil, nil
	}
	if res.IsError() {
		return nil, docurag.Errorf(docurag.EINTERNAL, "search error: %s", res.String())
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, docurag.Errorf(docurag.EINTERNAL, "decoding search response: %v", err)
	}

	chunks := make([]*docurag.Chunk, 0, len(sr.Hits.Hits))
	for _, hit := range sr.Hits.Hits {
		c := hit.Source
		chunks = append(chunks, &c)
	}
	return chunks, nil
}

// refresh forces an index refresh so subsequent searches observe the write.
func (i *Index) refresh(ctx context.Context) error {
	res, err := i.es.Indices.Refresh(
		i.es.Indices.Refresh.WithContext(ctx),
		i.es.Indices.Refresh.WithIndex(i.index),
	)
	if err != nil {
		return docurag.Errorf(docurag.EUNAVAILABLE, "refreshing index: %v", err)
	}
	res.Body.Close()
	return nil
}

package mock

import (
	"context"

	"github.com/mr-aymann/docuRAG"
)

var _ docurag.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is a mock implementation of docurag.VectorIndex.
type VectorIndex struct {
	UpsertFn         func(ctx context.Context, chunks []*docurag.Chunk) (int, error)
	DeleteBySourceFn func(ctx context.Context, sourceURL string) error
	DeleteBySiteFn   func(ctx context.Context, siteID string) error
	ClearFn          func(ctx context.Context) error
	SearchByTextFn   func(ctx context.Context, query string, k int) ([]*docurag.Chunk, error)
	SearchByVectorFn func(ctx context.Context, vector []float32, k int) ([]*docurag.Chunk, error)
	PingFn           func(ctx context.Context) error
}

func (i *VectorIndex) Upsert(ctx context.Context, chunks []*docurag.Chunk) (int, error) {
	return i.UpsertFn(ctx, chunks)
}

func (i *VectorIndex) DeleteBySource(ctx context.Context, sourceURL string) error {
	return i.DeleteBySourceFn(ctx, sourceURL)
}

func (i *VectorIndex) DeleteBySite(ctx context.Context, siteID string) error {
	return i.DeleteBySiteFn(ctx, siteID)
}

func (i *VectorIndex) Clear(ctx context.Context) error {
	return i.ClearFn(ctx)
}

func (i *VectorIndex) SearchByText(ctx context.Context, query string, k int) ([]*docurag.Chunk, error) {
	return i.SearchByTextFn(ctx, query, k)
}

func (i *VectorIndex) SearchByVector(ctx context.Context, vector []float32, k int) ([]*docurag.Chunk, error) {
	return i.SearchByVectorFn(ctx, vector, k)
}

func (i *VectorIndex) Ping(ctx context.Context) error {
	if i.PingFn == nil {
		return nil
	}
	return i.PingFn(ctx)
}

var _ docurag.Retriever = (*Retriever)(nil)

// Retriever is a mock implementation of docurag.Retriever.
type Retriever struct {
	SearchFn func(ctx context.Context, query string, k int) ([]*docurag.Chunk, error)
}

func (r *Retriever) Search(ctx context.Context, query string, k int) ([]*docurag.Chunk, error) {
	return r.SearchFn(ctx, query, k)
}

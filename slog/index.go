package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mr-aymann/docuRAG"
)

// Ensure LoggingIndex implements docurag.VectorIndex.
var _ docurag.VectorIndex = (*LoggingIndex)(nil)

// LoggingIndex wraps a VectorIndex with logging on its write and search
// operations.
type LoggingIndex struct {
	next   docurag.VectorIndex
	logger *slog.Logger
}

// NewLoggingIndex creates a new LoggingIndex.
func NewLoggingIndex(next docurag.VectorIndex, logger *slog.Logger) *LoggingIndex {
	return &LoggingIndex{next: next, logger: logger}
}

func (i *LoggingIndex) Upsert(ctx context.Context, chunks []*docurag.Chunk) (written int, err error) {
	defer func(begin time.Time) {
		i.logger.Info("index upsert",
			"chunks", len(chunks),
			"written", written,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Upsert(ctx, chunks)
}

func (i *LoggingIndex) DeleteBySource(ctx context.Context, sourceURL string) (err error) {
	defer func(begin time.Time) {
		i.logger.Debug("index delete by source",
			"source_url", sourceURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.DeleteBySource(ctx, sourceURL)
}

func (i *LoggingIndex) DeleteBySite(ctx context.Context, siteID string) (err error) {
	defer func(begin time.Time) {
		i.logger.Info("index delete by site",
			"site_id", siteID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.DeleteBySite(ctx, siteID)
}

func (i *LoggingIndex) Clear(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		i.logger.Info("index clear",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Clear(ctx)
}

func (i *LoggingIndex) SearchByText(ctx context.Context, query string, k int) (chunks []*docurag.Chunk, err error) {
	defer func(begin time.Time) {
		i.logger.Debug("index text search",
			"k", k,
			"hits", len(chunks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.SearchByText(ctx, query, k)
}

func (i *LoggingIndex) SearchByVector(ctx context.Context, vector []float32, k int) (chunks []*docurag.Chunk, err error) {
	defer func(begin time.Time) {
		i.logger.Debug("index vector search",
			"k", k,
			"hits", len(chunks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.SearchByVector(ctx, vector, k)
}

func (i *LoggingIndex) Ping(ctx context.Context) error {
	return i.next.Ping(ctx)
}

// Package slog provides logging decorators for docurag services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mr-aymann/docuRAG"
)

// Ensure LoggingDiscoverer implements docurag.URLDiscoverer.
var _ docurag.URLDiscoverer = (*LoggingDiscoverer)(nil)

// LoggingDiscoverer wraps a URLDiscoverer with logging.
type LoggingDiscoverer struct {
	next   docurag.URLDiscoverer
	logger *slog.Logger
}

// NewLoggingDiscoverer creates a new LoggingDiscoverer.
func NewLoggingDiscoverer(next docurag.URLDiscoverer, logger *slog.Logger) *LoggingDiscoverer {
	return &LoggingDiscoverer{next: next, logger: logger}
}

// Discover delegates to the wrapped discoverer and logs the operation.
func (d *LoggingDiscoverer) Discover(ctx context.Context, seedURL string, maxPages int) (urls []string, err error) {
	defer func(begin time.Time) {
		d.logger.Info("url discovery",
			"url", seedURL,
			"max_pages", maxPages,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Discover(ctx, seedURL, maxPages)
}

package slog

import (
	"log/slog"

	"github.com/mr-aymann/docuRAG"
)

// Ensure Notifier implements docurag.Notifier.
var _ docurag.Notifier = (*Notifier)(nil)

// Notifier logs published events. Useful as a subscriber-of-last-resort in
// CLI contexts where no UI is connected.
type Notifier struct {
	logger *slog.Logger
}

// NewNotifier creates a new logging Notifier.
func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Publish logs the event at a level matching its severity.
func (n *Notifier) Publish(event docurag.Event) {
	attrs := []any{"type", event.Type}
	if event.SiteID != "" {
		attrs = append(attrs, "site_id", event.SiteID)
	}
	if event.URL != "" {
		attrs = append(attrs, "url", event.URL)
	}
	if event.Status != nil {
		attrs = append(attrs, "status", event.Status.Status, "progress", event.Progress)
	}

	switch event.Type {
	case docurag.EventCrawlURLError, docurag.EventCrawlError:
		attrs = append(attrs, "error", event.Error)
		n.logger.Warn("crawl event", attrs...)
	default:
		n.logger.Info("crawl event", attrs...)
	}
}

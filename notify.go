package docurag

// Event types published by the ingestion orchestrator.
const (
	EventSiteAdded       = "site_added"
	EventCrawlStatus     = "crawl_status"
	EventCrawlProgress   = "crawl_progress"
	EventCrawlURLError   = "crawl_url_error"
	EventCrawlCompleted  = "crawl_completed"
	EventCrawlError      = "crawl_error"
	EventSiteDeleted     = "site_deleted"
	EventDatabaseCleared = "database_cleared"
)

// Event is a JSON-shaped notification produced for UI layers and other
// subscribers. Fields beyond Type and SiteID are populated per event type.
type Event struct {
	Type   string `json:"type"`
	SiteID string `json:"site_id,omitempty"`

	// Site snapshot, set for site_added.
	Site *Site `json:"site,omitempty"`

	// Crawl status snapshot with its computed progress, set for
	// crawl_status and crawl_progress.
	Status   *CrawlStatus `json:"status,omitempty"`
	Progress float64      `json:"progress,omitempty"`

	// URL and error message, set for crawl_url_error and crawl_error.
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`

	// Set for crawl_completed.
	TotalChunks int `json:"total_chunks,omitempty"`
}

// Notifier delivers events to zero or more subscribers. Publish is
// fire-and-forget: a slow or disconnected subscriber must never interrupt
// the publisher.
type Notifier interface {
	Publish(event Event)
}

// NopNotifier discards all events.
type NopNotifier struct{}

// Publish implements Notifier.
func (NopNotifier) Publish(Event) {}

// MultiNotifier fans each event out to every wrapped notifier in order.
type MultiNotifier []Notifier

// Publish implements Notifier.
func (m MultiNotifier) Publish(event Event) {
	for _, n := range m {
		n.Publish(event)
	}
}

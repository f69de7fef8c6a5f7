package docurag

import (
	"context"
	"time"
)

// Site statuses.
const (
	SiteCrawling  = "crawling"
	SiteCompleted = "completed"
	SiteError     = "error"
)

// Site represents one ingestion job for one seed URL.
type Site struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	TotalChunks int       `json:"total_chunks"`
	AddedAt     time.Time `json:"added_at"`
}

// Validate returns an error if the site contains invalid fields.
func (s *Site) Validate() error {
	if s.URL == "" {
		return Errorf(EINVALID, "site URL required")
	}
	if s.Name == "" {
		return Errorf(EINVALID, "site name required")
	}
	return nil
}

// Crawl states. A crawl moves starting -> finding_urls -> crawling and
// terminates in completed or error.
const (
	CrawlStarting    = "starting"
	CrawlFindingURLs = "finding_urls"
	CrawlCrawling    = "crawling"
	CrawlCompleted   = "completed"
	CrawlError       = "error"
)

// CrawlStatus is the mutable progress record paired 1:1 with a Site. It is
// kept separate from Site because it changes on every processed URL, while
// site metadata rarely changes.
//
// During a run it is owned and mutated exclusively by the ingestion
// orchestrator; consumers read snapshots through CrawlStatusService.
type CrawlStatus struct {
	SiteID        string `json:"site_id"`
	Status        string `json:"status"`
	TotalURLs     int    `json:"total_urls"`
	ProcessedURLs int    `json:"processed_urls"`
	ChunksAdded   int    `json:"chunks_added"`
	CurrentURL    string `json:"current_url"`

	// Last error message, present only in the error state.
	Error string `json:"error,omitempty"`
}

// Progress returns completion as a percentage in [0, 100]. It is always
// recomputed from its inputs, never stored.
func (cs *CrawlStatus) Progress() float64 {
	total := cs.TotalURLs
	if total < 1 {
		total = 1
	}
	p := float64(cs.ProcessedURLs) / float64(total) * 100
	if p > 100 {
		p = 100
	}
	return p
}

// SiteService manages the durable registry of sites. Implementations must
// persist every mutation before returning so a process restart does not lose
// the list of known sites (an in-flight crawl is not resumable).
type SiteService interface {
	// CreateSite registers a new site. Generates the ID.
	CreateSite(ctx context.Context, site *Site) error

	// FindSiteByID retrieves a site by ID.
	// Returns ENOTFOUND if the site does not exist.
	FindSiteByID(ctx context.Context, id string) (*Site, error)

	// FindSites retrieves all registered sites, most recent first.
	FindSites(ctx context.Context) ([]*Site, error)

	// UpdateSite updates an existing site.
	// Returns ENOTFOUND if the site does not exist.
	UpdateSite(ctx context.Context, id string, upd SiteUpdate) (*Site, error)

	// DeleteSite permanently removes a site and its crawl status.
	// Returns ENOTFOUND if the site does not exist.
	DeleteSite(ctx context.Context, id string) error

	// DeleteAllSites removes every site and crawl status.
	DeleteAllSites(ctx context.Context) error
}

// SiteUpdate represents fields that can be updated on a site.
type SiteUpdate struct {
	Status      *string `json:"status"`
	TotalChunks *int    `json:"totalChunks"`
}

// CrawlStatusService manages crawl progress records.
type CrawlStatusService interface {
	// SaveCrawlStatus inserts or replaces the status for its site.
	SaveCrawlStatus(ctx context.Context, status *CrawlStatus) error

	// FindCrawlStatus retrieves the status for a site.
	// Returns ENOTFOUND if no status exists.
	FindCrawlStatus(ctx context.Context, siteID string) (*CrawlStatus, error)
}

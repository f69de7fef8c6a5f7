// Package crawl provides documentation ingestion orchestration.
// It coordinates URL discovery, concurrent fetching, content extraction,
// chunking, embedding and vector storage for documentation sites.
package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/mr-aymann/docuRAG"
)

// Ingestor orchestrates the full ingestion pipeline for documentation sites.
// It owns the crawl state machine: a crawl moves starting -> finding_urls ->
// crawling and terminates in completed or error.
type Ingestor struct {
	Sites      docurag.SiteService
	Statuses   docurag.CrawlStatusService
	Discoverer docurag.URLDiscoverer
	Pages      docurag.PageSource
	Extractor  docurag.Extractor
	Converter  docurag.Converter
	Chunker    *docurag.Chunker
	Embedder   docurag.Embedder
	Index      docurag.VectorIndex
	Notifier   docurag.Notifier

	// MaxPages bounds URL discovery. Zero means DefaultMaxPages.
	MaxPages int

	// Delete-before-insert for one source must never interleave with
	// another write to the same source.
	mu          sync.Mutex
	sourceLocks map[string]*sync.Mutex
}

// AddSite registers a new site and returns it with its initial crawl status
// persisted. The crawl itself is run separately via Ingest.
func (ing *Ingestor) AddSite(ctx context.Context, siteURL, name string) (*docurag.Site, error) {
	site := &docurag.Site{
		URL:    siteURL,
		Name:   name,
		Status: docurag.SiteCrawling,
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}

	if err := ing.Sites.CreateSite(ctx, site); err != nil {
		return nil, err
	}

	status := &docurag.CrawlStatus{
		SiteID: site.ID,
		Status: docurag.CrawlStarting,
	}
	if err := ing.Statuses.SaveCrawlStatus(ctx, status); err != nil {
		return nil, err
	}

	ing.notify(docurag.Event{
		Type:   docurag.EventSiteAdded,
		SiteID: site.ID,
		Site:   site,
	})

	return site, nil
}

// Ingest runs the crawl pipeline for a registered site: discover URLs, fetch
// pages concurrently, extract and chunk content, embed and store chunks.
// Individual page failures are absorbed and reported as events; only
// pipeline-level failures (no URLs, store unreachable) put the crawl into
// the error state. The returned error mirrors that terminal state.
func (ing *Ingestor) Ingest(ctx context.Context, site *docurag.Site) error {
	status := &docurag.CrawlStatus{
		SiteID: site.ID,
		Status: docurag.CrawlStarting,
	}
	if err := ing.saveStatus(ctx, status); err != nil {
		return err
	}

	status.Status = docurag.CrawlFindingURLs
	if err := ing.saveStatus(ctx, status); err != nil {
		return err
	}

	// Fail fast when the vector store is unreachable rather than after a
	// full crawl.
	if err := ing.Index.Ping(ctx); err != nil {
		return ing.fail(ctx, site, status, err)
	}

	urls, err := ing.Discoverer.Discover(ctx, site.URL, ing.MaxPages)
	if err != nil {
		return ing.fail(ctx, site, status, err)
	}
	if len(urls) == 0 {
		return ing.fail(ctx, site, status, docurag.Errorf(docurag.ENOTFOUND, "no URLs discovered for %s", site.URL))
	}

	status.Status = docurag.CrawlCrawling
	status.TotalURLs = len(urls)
	if err := ing.saveStatus(ctx, status); err != nil {
		return err
	}

	// Progress events are throttled to roughly 20 per crawl.
	step := len(urls) / 20
	if step < 1 {
		step = 1
	}

	for res := range ing.Pages.FetchAll(ctx, urls) {
		status.ProcessedURLs++
		status.CurrentURL = res.URL

		if res.Err != nil {
			ing.urlError(site.ID, res.URL, res.Err)
		} else if added, err := ing.processPage(ctx, site, res); err != nil {
			ing.urlError(site.ID, res.URL, err)
		} else {
			status.ChunksAdded += added
		}

		if err := ing.Statuses.SaveCrawlStatus(ctx, status); err != nil {
			return ing.fail(ctx, site, status, err)
		}

		if status.ProcessedURLs%step == 0 || status.ProcessedURLs == status.TotalURLs {
			ing.notify(docurag.Event{
				Type:     docurag.EventCrawlProgress,
				SiteID:   site.ID,
				Status:   snapshot(status),
				Progress: status.Progress(),
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return ing.fail(ctx, site, status, err)
	}

	status.Status = docurag.CrawlCompleted
	status.CurrentURL = ""
	if err := ing.saveStatus(ctx, status); err != nil {
		return err
	}

	completed := docurag.SiteCompleted
	total := status.ChunksAdded
	if _, err := ing.Sites.UpdateSite(ctx, site.ID, docurag.SiteUpdate{
		Status:      &completed,
		TotalChunks: &total,
	}); err != nil {
		return err
	}

	ing.notify(docurag.Event{
		Type:        docurag.EventCrawlCompleted,
		SiteID:      site.ID,
		TotalChunks: total,
	})

	return nil
}

// processPage turns one fetched page into stored chunks and returns how many
// were written. Pages with no extractable content yield zero chunks and no
// error.
func (ing *Ingestor) processPage(ctx context.Context, site *docurag.Site, res docurag.PageResult) (int, error) {
	extracted, err := ing.Extractor.Extract(res.HTML)
	if err != nil {
		// Boilerplate-only pages are skippable, not failures.
		if docurag.ErrorCode(err) == docurag.EINVALID {
			return 0, nil
		}
		return 0, err
	}

	markdown, err := ing.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return 0, err
	}

	chunker := ing.Chunker
	if chunker == nil {
		chunker = &docurag.Chunker{}
	}
	chunks := chunker.ChunkPage(markdown, res.URL, site.ID, time.Now().UTC())
	if len(chunks) == 0 {
		return 0, nil
	}

	for _, c := range chunks {
		embedding, err := ing.Embedder.Embed(ctx, c.Text)
		if err != nil {
			return 0, err
		}
		c.Embedding = embedding
	}

	unlock := ing.lockSource(res.URL)
	defer unlock()

	// Re-crawls replace a page's chunks wholesale so stale trailing chunks
	// from a longer previous version cannot survive.
	if err := ing.Index.DeleteBySource(ctx, res.URL); err != nil {
		return 0, err
	}
	return ing.Index.Upsert(ctx, chunks)
}

// DeleteSite removes a site, its crawl status and every chunk it owns.
// Returns ENOTFOUND if the site does not exist.
func (ing *Ingestor) DeleteSite(ctx context.Context, siteID string) error {
	if _, err := ing.Sites.FindSiteByID(ctx, siteID); err != nil {
		return err
	}

	if err := ing.Index.DeleteBySite(ctx, siteID); err != nil {
		return err
	}
	if err := ing.Sites.DeleteSite(ctx, siteID); err != nil {
		return err
	}

	ing.notify(docurag.Event{
		Type:   docurag.EventSiteDeleted,
		SiteID: siteID,
	})
	return nil
}

// ClearAll wipes the vector store and the site registry.
func (ing *Ingestor) ClearAll(ctx context.Context) error {
	if err := ing.Index.Clear(ctx); err != nil {
		return err
	}
	if err := ing.Sites.DeleteAllSites(ctx); err != nil {
		return err
	}

	ing.notify(docurag.Event{Type: docurag.EventDatabaseCleared})
	return nil
}

// GetSites returns all registered sites, most recent first.
func (ing *Ingestor) GetSites(ctx context.Context) ([]*docurag.Site, error) {
	return ing.Sites.FindSites(ctx)
}

// GetStatus returns the crawl status for a site.
func (ing *Ingestor) GetStatus(ctx context.Context, siteID string) (*docurag.CrawlStatus, error) {
	return ing.Statuses.FindCrawlStatus(ctx, siteID)
}

// fail moves the crawl and its site into the error state and reports it.
func (ing *Ingestor) fail(ctx context.Context, site *docurag.Site, status *docurag.CrawlStatus, cause error) error {
	status.Status = docurag.CrawlError
	status.Error = docurag.ErrorMessage(cause)
	_ = ing.Statuses.SaveCrawlStatus(ctx, status)

	errState := docurag.SiteError
	_, _ = ing.Sites.UpdateSite(ctx, site.ID, docurag.SiteUpdate{Status: &errState})

	ing.notify(docurag.Event{
		Type:   docurag.EventCrawlError,
		SiteID: site.ID,
		Error:  status.Error,
	})
	return cause
}

// saveStatus persists the status and publishes a crawl_status event.
func (ing *Ingestor) saveStatus(ctx context.Context, status *docurag.CrawlStatus) error {
	if err := ing.Statuses.SaveCrawlStatus(ctx, status); err != nil {
		return err
	}
	ing.notify(docurag.Event{
		Type:     docurag.EventCrawlStatus,
		SiteID:   status.SiteID,
		Status:   snapshot(status),
		Progress: status.Progress(),
	})
	return nil
}

// urlError reports a single-page failure without interrupting the crawl.
func (ing *Ingestor) urlError(siteID, url string, err error) {
	ing.notify(docurag.Event{
		Type:   docurag.EventCrawlURLError,
		SiteID: siteID,
		URL:    url,
		Error:  docurag.ErrorMessage(err),
	})
}

// lockSource acquires the per-source write lock and returns its release.
func (ing *Ingestor) lockSource(sourceURL string) func() {
	ing.mu.Lock()
	if ing.sourceLocks == nil {
		ing.sourceLocks = make(map[string]*sync.Mutex)
	}
	l, ok := ing.sourceLocks[sourceURL]
	if !ok {
		l = &sync.Mutex{}
		ing.sourceLocks[sourceURL] = l
	}
	ing.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// notify publishes through the configured notifier, if any.
func (ing *Ingestor) notify(event docurag.Event) {
	if ing.Notifier == nil {
		return
	}
	ing.Notifier.Publish(event)
}

// snapshot copies a status so subscribers never observe later mutations.
func snapshot(status *docurag.CrawlStatus) *docurag.CrawlStatus {
	s := *status
	return &s
}

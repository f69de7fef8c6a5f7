package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mr-aymann/docuRAG"
)

// Compile-time interface verification.
var _ docurag.CrawlStatusService = (*CrawlStatusService)(nil)

// CrawlStatusService implements docurag.CrawlStatusService using SQLite.
type CrawlStatusService struct {
	db *DB
}

// NewCrawlStatusService creates a new CrawlStatusService.
func NewCrawlStatusService(db *DB) *CrawlStatusService {
	return &CrawlStatusService{db: db}
}

// SaveCrawlStatus inserts or replaces the status row for its site.
func (s *CrawlStatusService) SaveCrawlStatus(ctx context.Context, status *docurag.CrawlStatus) error {
	if status.SiteID == "" {
		return docurag.Errorf(docurag.EINVALID, "crawl status site ID required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO crawl_status
			(site_id, status, total_urls, processed_urls, chunks_added, current_url, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, status.SiteID, status.Status, status.TotalURLs, status.ProcessedURLs,
		status.ChunksAdded, status.CurrentURL, status.Error)

	return err
}

// FindCrawlStatus retrieves the status for a site.
func (s *CrawlStatusService) FindCrawlStatus(ctx context.Context, siteID string) (*docurag.CrawlStatus, error) {
	var status docurag.CrawlStatus

	err := s.db.QueryRowContext(ctx, `
		SELECT site_id, status, total_urls, processed_urls, chunks_added, current_url, error
		FROM crawl_status
		WHERE site_id = ?
	`, siteID).Scan(&status.SiteID, &status.Status, &status.TotalURLs, &status.ProcessedURLs,
		&status.ChunksAdded, &status.CurrentURL, &status.Error)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, docurag.Errorf(docurag.ENOTFOUND, "crawl status not found")
	}
	if err != nil {
		return nil, err
	}

	return &status, nil
}

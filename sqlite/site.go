package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mr-aymann/docuRAG"
)

// Compile-time interface verification.
var _ docurag.SiteService = (*SiteService)(nil)

// SiteService implements docurag.SiteService using SQLite.
type SiteService struct {
	db *DB
}

// NewSiteService creates a new SiteService.
func NewSiteService(db *DB) *SiteService {
	return &SiteService{db: db}
}

// CreateSite registers a new site, generating its ID.
func (s *SiteService) CreateSite(ctx context.Context, site *docurag.Site) error {
	if err := site.Validate(); err != nil {
		return err
	}

	site.ID = uuid.New().String()
	site.AddedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sites (id, url, name, status, total_chunks, added_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, site.ID, site.URL, site.Name, site.Status, site.TotalChunks,
		site.AddedAt.Format(time.RFC3339))

	return err
}

// FindSiteByID retrieves a site by ID.
func (s *SiteService) FindSiteByID(ctx context.Context, id string) (*docurag.Site, error) {
	var site docurag.Site
	var addedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, name, status, total_chunks, added_at
		FROM sites
		WHERE id = ?
	`, id).Scan(&site.ID, &site.URL, &site.Name, &site.Status, &site.TotalChunks, &addedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, docurag.Errorf(docurag.ENOTFOUND, "site not found")
	}
	if err != nil {
		return nil, err
	}

	site.AddedAt, err = time.Parse(time.RFC3339, addedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse added_at: %w", err)
	}

	return &site, nil
}

// FindSites retrieves all registered sites, most recent first.
func (s *SiteService) FindSites(ctx context.Context) ([]*docurag.Site, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, name, status, total_chunks, added_at
		FROM sites
		ORDER BY added_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []*docurag.Site
	for rows.Next() {
		var site docurag.Site
		var addedAt string

		if err := rows.Scan(&site.ID, &site.URL, &site.Name, &site.Status, &site.TotalChunks, &addedAt); err != nil {
			return nil, err
		}

		site.AddedAt, err = time.Parse(time.RFC3339, addedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse added_at: %w", err)
		}

		sites = append(sites, &site)
	}

	return sites, rows.Err()
}

// UpdateSite updates an existing site.
func (s *SiteService) UpdateSite(ctx context.Context, id string, upd docurag.SiteUpdate) (*docurag.Site, error) {
	site, err := s.FindSiteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		site.Status = *upd.Status
	}
	if upd.TotalChunks != nil {
		site.TotalChunks = *upd.TotalChunks
	}

	if err := site.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE sites
		SET status = ?, total_chunks = ?
		WHERE id = ?
	`, site.Status, site.TotalChunks, id)

	if err != nil {
		return nil, err
	}

	return site, nil
}

// DeleteSite permanently removes a site. Its crawl status row is removed by
// the foreign key cascade.
func (s *SiteService) DeleteSite(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sites WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return docurag.Errorf(docurag.ENOTFOUND, "site not found")
	}

	return nil
}

// DeleteAllSites removes every site and crawl status.
func (s *SiteService) DeleteAllSites(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sites")
	return err
}

package mock

import (
	"context"

	"github.com/mr-aymann/docuRAG"
)

var _ docurag.SiteService = (*SiteService)(nil)

// SiteService is a mock implementation of docurag.SiteService.
type SiteService struct {
	CreateSiteFn     func(ctx context.Context, site *docurag.Site) error
	FindSiteByIDFn   func(ctx context.Context, id string) (*docurag.Site, error)
	FindSitesFn      func(ctx context.Context) ([]*docurag.Site, error)
	UpdateSiteFn     func(ctx context.Context, id string, upd docurag.SiteUpdate) (*docurag.Site, error)
	DeleteSiteFn     func(ctx context.Context, id string) error
	DeleteAllSitesFn func(ctx context.Context) error
}

func (s *SiteService) CreateSite(ctx context.Context, site *docurag.Site) error {
	return s.CreateSiteFn(ctx, site)
}

func (s *SiteService) FindSiteByID(ctx context.Context, id string) (*docurag.Site, error) {
	return s.FindSiteByIDFn(ctx, id)
}

func (s *SiteService) FindSites(ctx context.Context) ([]*docurag.Site, error) {
	return s.FindSitesFn(ctx)
}

func (s *SiteService) UpdateSite(ctx context.Context, id string, upd docurag.SiteUpdate) (*docurag.Site, error) {
	return s.UpdateSiteFn(ctx, id, upd)
}

func (s *SiteService) DeleteSite(ctx context.Context, id string) error {
	return s.DeleteSiteFn(ctx, id)
}

func (s *SiteService) DeleteAllSites(ctx context.Context) error {
	return s.DeleteAllSitesFn(ctx)
}

var _ docurag.CrawlStatusService = (*CrawlStatusService)(nil)

// CrawlStatusService is a mock implementation of docurag.CrawlStatusService.
type CrawlStatusService struct {
	SaveCrawlStatusFn func(ctx context.Context, status *docurag.CrawlStatus) error
	FindCrawlStatusFn func(ctx context.Context, siteID string) (*docurag.CrawlStatus, error)
}

func (s *CrawlStatusService) SaveCrawlStatus(ctx context.Context, status *docurag.CrawlStatus) error {
	return s.SaveCrawlStatusFn(ctx, status)
}

func (s *CrawlStatusService) FindCrawlStatus(ctx context.Context, siteID string) (*docurag.CrawlStatus, error) {
	return s.FindCrawlStatusFn(ctx, siteID)
}

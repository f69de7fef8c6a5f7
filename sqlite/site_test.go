package sqlite_test

import (
	"context"
	"testing"

	"github.com/mr-aymann/docuRAG"
	"github.com/mr-aymann/docuRAG/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteService_CreateSite(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	svc := sqlite.NewSiteService(db)
	ctx := context.Background()

	site := &docurag.Site{
		URL:    "https://docs.example.com",
		Name:   "Example Docs",
		Status: docurag.SiteCrawling,
	}
	require.NoError(t, svc.CreateSite(ctx, site))

	assert.NotEmpty(t, site.ID)
	assert.False(t, site.AddedAt.IsZero())

	got, err := svc.FindSiteByID(ctx, site.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com", got.URL)
	assert.Equal(t, "Example Docs", got.Name)
	assert.Equal(t, docurag.SiteCrawling, got.Status)
	assert.Equal(t, 0, got.TotalChunks)
}

func TestSiteService_CreateSite_Invalid(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	svc := sqlite.NewSiteService(db)

	err := svc.CreateSite(context.Background(), &docurag.Site{Name: "No URL"})

	require.Error(t, err)
	assert.Equal(t, docurag.EINVALID, docurag.ErrorCode(err))
}

func TestSiteService_FindSiteByID_NotFound(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	svc := sqlite.NewSiteService(db)

	_, err := svc.FindSiteByID(context.Background(), "no-such-id")

	require.Error(t, err)
	assert.Equal(t, docurag.ENOTFOUND, docurag.ErrorCode(err))
}

func TestSiteService_FindSites(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	svc := sqlite.NewSiteService(db)
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third"} {
		require.NoError(t, svc.CreateSite(ctx, &docurag.Site{
			URL:    "https://" + name + ".example.com",
			Name:   name,
			Status: docurag.SiteCrawling,
		}))
	}

	sites, err := svc.FindSites(ctx)
	require.NoError(t, err)
	assert.Len(t, sites, 3)
}

func TestSiteService_UpdateSite(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	svc := sqlite.NewSiteService(db)
	ctx := context.Background()

	site := &docurag.Site{
		URL:    "https://docs.example.com",
		Name:   "Example Docs",
		Status: docurag.SiteCrawling,
	}
	require.NoError(t, svc.CreateSite(ctx, site))

	completed := docurag.SiteCompleted
	chunks := 42
	updated, err := svc.UpdateSite(ctx, site.ID, docurag.SiteUpdate{
		Status:      &completed,
		TotalChunks: &chunks,
	})
	require.NoError(t, err)
	assert.Equal(t, docurag.SiteCompleted, updated.Status)
	assert.Equal(t, 42, updated.TotalChunks)

	got, err := svc.FindSiteByID(ctx, site.ID)
	require.NoError(t, err)
	assert.Equal(t, docurag.SiteCompleted, got.Status)
	assert.Equal(t, 42, got.TotalChunks)
}

func TestSiteService_UpdateSite_NotFound(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	svc := sqlite.NewSiteService(db)

	status := docurag.SiteCompleted
	_, err := svc.UpdateSite(context.Background(), "no-such-id", docurag.SiteUpdate{Status: &status})

	require.Error(t, err)
	assert.Equal(t, docurag.ENOTFOUND, docurag.ErrorCode(err))
}

func TestSiteService_DeleteSite(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	svc := sqlite.NewSiteService(db)
	ctx := context.Background()

	site := &docurag.Site{
		URL:    "https://docs.example.com",
		Name:   "Example Docs",
		Status: docurag.SiteCrawling,
	}
	require.NoError(t, svc.CreateSite(ctx, site))

	require.NoError(t, svc.DeleteSite(ctx, site.ID))

	_, err := svc.FindSiteByID(ctx, site.ID)
	assert.Equal(t, docurag.ENOTFOUND, docurag.ErrorCode(err))
}

func TestSiteService_DeleteSite_NotFound(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	svc := sqlite.NewSiteService(db)

	err := svc.DeleteSite(context.Background(), "no-such-id")

	require.Error(t, err)
	assert.Equal(t, docurag.ENOTFOUND, docurag.ErrorCode(err))
}

func TestSiteService_DeleteSite_CascadesCrawlStatus(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	sites := sqlite.NewSiteService(db)
	statuses := sqlite.NewCrawlStatusService(db)
	ctx := context.Background()

	site := &docurag.Site{
		URL:    "https://docs.example.com",
		Name:   "Example Docs",
		Status: docurag.SiteCrawling,
	}
	require.NoError(t, sites.CreateSite(ctx, site))
	require.NoError(t, statuses.SaveCrawlStatus(ctx, &docurag.CrawlStatus{
		SiteID: site.ID,
		Status: docurag.CrawlStarting,
	}))

	require.NoError(t, sites.DeleteSite(ctx, site.ID))

	_, err := statuses.FindCrawlStatus(ctx, site.ID)
	assert.Equal(t, docurag.ENOTFOUND, docurag.ErrorCode(err))
}

func TestSiteService_DeleteAllSites(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	svc := sqlite.NewSiteService(db)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, svc.CreateSite(ctx, &docurag.Site{
			URL:    "https://docs.example.com",
			Name:   "Example Docs",
			Status: docurag.SiteCrawling,
		}))
	}

	require.NoError(t, svc.DeleteAllSites(ctx))

	sites, err := svc.FindSites(ctx)
	require.NoError(t, err)
	assert.Empty(t, sites)
}

func TestSiteService_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/sites.db"
	ctx := context.Background()

	db := sqlite.NewDB(path)
	require.NoError(t, db.Open())
	svc := sqlite.NewSiteService(db)

	site := &docurag.Site{
		URL:    "https://docs.example.com",
		Name:   "Example Docs",
		Status: docurag.SiteCompleted,
	}
	require.NoError(t, svc.CreateSite(ctx, site))
	require.NoError(t, db.Close())

	db2 := sqlite.NewDB(path)
	require.NoError(t, db2.Open())
	defer db2.Close()

	got, err := sqlite.NewSiteService(db2).FindSiteByID(ctx, site.ID)
	require.NoError(t, err)
	assert.Equal(t, "Example Docs", got.Name)
	assert.Equal(t, docurag.SiteCompleted, got.Status)
}

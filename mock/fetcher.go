// Package mock provides function-field mock implementations of the docurag
// service interfaces for testing.
package mock

import (
	"context"

	"github.com/mr-aymann/docuRAG"
)

var _ docurag.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docurag.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ docurag.PageSource = (*PageSource)(nil)

// PageSource is a mock implementation of docurag.PageSource.
type PageSource struct {
	FetchAllFn func(ctx context.Context, urls []string) <-chan docurag.PageResult
}

func (p *PageSource) FetchAll(ctx context.Context, urls []string) <-chan docurag.PageResult {
	return p.FetchAllFn(ctx, urls)
}

var _ docurag.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of docurag.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}

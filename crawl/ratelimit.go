package crawl

import (
	"context"
	"sync"

	"github.com/mr-aymann/docuRAG"
	"golang.org/x/time/rate"
)

var _ docurag.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces a requests-per-second ceiling independently per
// domain, so crawling one host never slows discovery on another. Limiters
// are created lazily with a burst of 1: requests to the same host are
// strictly spaced, never bunched.
type DomainLimiter struct {
	limit rate.Limit

	mu      sync.Mutex
	perHost map[string]*rate.Limiter
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each domain.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limit:   rate.Limit(rps),
		perHost: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until the domain's limiter releases a token, or the context is
// canceled.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.limiterFor(domain).Wait(ctx)
}

func (d *DomainLimiter) limiterFor(domain string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.perHost[domain]
	if !ok {
		l = rate.NewLimiter(d.limit, 1)
		d.perHost[domain] = l
	}
	return l
}

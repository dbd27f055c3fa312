package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/manas95826/scrape-all"
	"golang.org/x/time/rate"
)

var _ scrapeall.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces the courtesy delay between requests to the same
// domain using token buckets. Each domain gets its own limiter with a
// burst of 1, so the first request proceeds immediately and every
// subsequent request waits out the delay.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter with the given delay between
// requests to one domain. A non-positive delay disables pacing.
func NewDomainLimiter(delay time.Duration) *DomainLimiter {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}

	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the courtesy delay allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

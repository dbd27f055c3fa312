package mock

import (
	"context"

	"github.com/manas95826/scrape-all"
)

var _ scrapeall.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of scrapeall.Frontier.
type Frontier struct {
	PushFn func(rec scrapeall.URLRecord) bool
	PopFn  func() (scrapeall.URLRecord, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *Frontier) Push(rec scrapeall.URLRecord) bool {
	return f.PushFn(rec)
}

func (f *Frontier) Pop() (scrapeall.URLRecord, bool) {
	return f.PopFn()
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

func (f *Frontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ scrapeall.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of scrapeall.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}

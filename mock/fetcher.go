package mock

import (
	"context"

	"github.com/manas95826/scrape-all"
)

var _ scrapeall.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of scrapeall.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*scrapeall.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*scrapeall.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

package mock

import (
	"context"

	"github.com/manas95826/scrape-all"
)

var _ scrapeall.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of scrapeall.SitemapService.
type SitemapService struct {
	ResolveFn  func(ctx context.Context, sitemapURL string) ([]string, error)
	DiscoverFn func(ctx context.Context, siteURL string) ([]string, error)
}

func (s *SitemapService) Resolve(ctx context.Context, sitemapURL string) ([]string, error) {
	return s.ResolveFn(ctx, sitemapURL)
}

func (s *SitemapService) Discover(ctx context.Context, siteURL string) ([]string, error) {
	return s.DiscoverFn(ctx, siteURL)
}

package scrapeall

import (
	"context"
	"regexp"
)

// SitemapService resolves XML sitemaps into flat page-URL lists.
type SitemapService interface {
	// Resolve fetches and recursively parses the sitemap at sitemapURL,
	// following nested sitemap indexes. A resolution-scoped visited set
	// spans the whole call tree, so no sitemap URL is fetched twice even
	// on cyclic indexes. A malformed or unreachable sitemap resolves to
	// an empty list, not an error.
	Resolve(ctx context.Context, sitemapURL string) ([]string, error)

	// Discover probes the well-known sitemap locations against siteURL's
	// domain and its www variant, returning the first non-empty
	// resolution. An ENOTFOUND error signals the caller to fall back to
	// link crawling.
	Discover(ctx context.Context, siteURL string) ([]string, error)
}

// URLFilter excludes URLs by pattern.
type URLFilter struct {
	// Exclude patterns - URLs matching any pattern are excluded.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// A nil filter passes everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}

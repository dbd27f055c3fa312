package http

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/manas95826/scrape-all"
)

// DefaultSitemapFetchLimit caps sitemap fetches within a single resolution,
// guarding against sitemap indexes that reference each other in a cycle.
const DefaultSitemapFetchLimit = 100

// wellKnownSitemapPaths are probed in order during discovery.
var wellKnownSitemapPaths = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/sitemaps.xml",
	"/wp-sitemap.xml",
}

// Ensure SitemapService implements scrapeall.SitemapService.
var _ scrapeall.SitemapService = (*SitemapService)(nil)

// SitemapService resolves page URLs from XML sitemaps, following nested
// sitemap indexes recursively.
type SitemapService struct {
	fetcher    scrapeall.Fetcher
	fetchLimit int
	progress   scrapeall.ProgressFunc
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithFetchLimit caps sitemap fetches per resolution.
// Defaults to DefaultSitemapFetchLimit (100) if not specified.
func WithFetchLimit(n int) SitemapOption {
	return func(s *SitemapService) {
		s.fetchLimit = n
	}
}

// WithProgress installs a hook that receives resolution progress updates.
func WithProgress(fn scrapeall.ProgressFunc) SitemapOption {
	return func(s *SitemapService) {
		s.progress = fn
	}
}

// NewSitemapService creates a SitemapService that fetches sitemaps with the
// given fetcher. If fetcher is nil, a default HTTP Fetcher is used.
func NewSitemapService(fetcher scrapeall.Fetcher, opts ...SitemapOption) *SitemapService {
	s := &SitemapService{
		fetcher:    fetcher,
		fetchLimit: DefaultSitemapFetchLimit,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.fetcher == nil {
		s.fetcher = NewFetcher()
	}

	return s
}

// resolution tracks visited sitemap URLs and the fetch budget shared across
// one recursive resolution.
type resolution struct {
	seen    map[string]bool
	fetches int
	limit   int
}

// Resolve fetches a sitemap and returns the page URLs it lists, descending
// into nested sitemap indexes. A sitemap that cannot be fetched or parsed
// yields no URLs rather than an error; errors are reserved for context
// cancellation.
func (s *SitemapService) Resolve(ctx context.Context, sitemapURL string) ([]string, error) {
	res := &resolution{
		seen:  make(map[string]bool),
		limit: s.fetchLimit,
	}
	urls, err := s.resolve(ctx, sitemapURL, res)
	if err != nil {
		return nil, err
	}
	return dedupe(urls), nil
}

func (s *SitemapService) resolve(ctx context.Context, sitemapURL string, res *resolution) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Visited sitemaps and exhausted budgets end the descent quietly.
	if res.seen[sitemapURL] || res.fetches >= res.limit {
		return nil, nil
	}
	res.seen[sitemapURL] = true
	res.fetches++

	s.report(0.1, "Fetching sitemap: "+sitemapURL)

	result, err := s.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}

	s.report(0.3, "Parsing sitemap XML...")

	doc := etree.NewDocument()
	if err := doc.ReadFromString(result.Body); err != nil {
		s.report(0, fmt.Sprintf("Error parsing sitemap: %v", err))
		return nil, nil
	}
	root := doc.Root()
	if root == nil {
		return nil, nil
	}

	urlElements := root.SelectElements("url")
	s.report(0.5, fmt.Sprintf("Found %d URLs in sitemap", len(urlElements)))

	urls := locValues(urlElements)

	if nested := root.SelectElements("sitemap"); len(nested) > 0 {
		s.report(0.7, fmt.Sprintf("Found %d nested sitemaps, processing...", len(nested)))
		for _, nestedURL := range locValues(nested) {
			nestedURLs, err := s.resolve(ctx, nestedURL, res)
			if err != nil {
				return nil, err
			}
			urls = append(urls, nestedURLs...)
		}
	}

	s.report(1.0, fmt.Sprintf("Successfully parsed %d URLs from sitemap", len(urls)))
	return urls, nil
}

// Discover probes the well-known sitemap locations for a site, pairing each
// path with the bare and www-prefixed host variants, and returns the page
// URLs from the first probe that yields any. A total miss is reported as
// ENOTFOUND so callers can fall back to link crawling.
func (s *SitemapService) Discover(ctx context.Context, siteURL string) ([]string, error) {
	parsed, err := url.Parse(siteURL)
	if err != nil {
		return nil, scrapeall.Errorf(scrapeall.EINVALID, "invalid site URL %q: %v", siteURL, err)
	}
	if parsed.Host == "" {
		return nil, scrapeall.Errorf(scrapeall.EINVALID, "site URL %q has no host", siteURL)
	}

	scheme := parsed.Scheme
	if scheme != "http" && scheme != "https" {
		scheme = "https"
	}

	for _, candidate := range candidateSitemapURLs(scheme, parsed.Host) {
		s.report(0.1, "Trying sitemap: "+candidate)

		urls, err := s.Resolve(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if len(urls) > 0 {
			return urls, nil
		}
	}

	s.report(0, "No sitemap found, falling back to crawling")
	return nil, scrapeall.Errorf(scrapeall.ENOTFOUND, "no sitemap found for %s", siteURL)
}

// candidateSitemapURLs lists probe URLs path-major, original host before
// its www counterpart.
func candidateSitemapURLs(scheme, host string) []string {
	alt := "www." + host
	if strings.HasPrefix(host, "www.") {
		alt = strings.TrimPrefix(host, "www.")
	}

	candidates := make([]string, 0, 2*len(wellKnownSitemapPaths))
	for _, path := range wellKnownSitemapPaths {
		candidates = append(candidates, scheme+"://"+host+path, scheme+"://"+alt+path)
	}
	return candidates
}

// locValues extracts trimmed <loc> texts from the given elements.
func locValues(elements []*etree.Element) []string {
	var values []string
	for _, el := range elements {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// dedupe removes duplicate URLs, keeping first occurrences in order.
func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	var out []string
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

func (s *SitemapService) report(fraction float64, message string) {
	if s.progress != nil {
		s.progress(fraction, message)
	}
}

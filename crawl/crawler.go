// Package crawl orchestrates scraping runs. It coordinates URL discovery
// (sitemap-first with breadth-first link crawling as the fallback), paced
// fetching, content extraction, and result accounting.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/manas95826/scrape-all"
)

// Crawler orchestrates the scraping of a site. All collaborator fields
// except Fetcher, Sections, and Links are optional: a nil Classifier
// skips route classification, a nil Sink keeps pages in memory only, and
// a nil Limiter disables request pacing.
type Crawler struct {
	Fetcher     scrapeall.Fetcher
	Sitemaps    scrapeall.SitemapService
	Sections    scrapeall.SectionExtractor
	Custom      scrapeall.CustomExtractor
	Links       scrapeall.LinkExtractor
	Classifier  scrapeall.RouteClassifier
	Limiter     scrapeall.DomainLimiter
	Sink        scrapeall.PageSink
	Logger      *slog.Logger
	RetryDelays []time.Duration
}

// Result summarizes a scraping run.
type Result struct {
	// RunID uniquely identifies the run in logs and summaries.
	RunID string

	// Pages holds every successfully scraped page in scrape order.
	Pages []*scrapeall.Page

	// Failed counts pages that could not be fetched or extracted.
	Failed int

	// Sections counts extracted sections across all pages.
	Sections int

	// Characters counts section body text across all pages.
	Characters int

	Duration time.Duration
}

// Run scrapes a site end to end: discover page URLs, then fetch and
// extract each one. Discovery prefers the sitemap when cfg.UseSitemap is
// set and falls back to breadth-first crawling when no sitemap resolves.
// Progress moves through [0, 0.5] during discovery and [0.5, 1] during
// scraping.
func (c *Crawler) Run(ctx context.Context, siteURL string, cfg scrapeall.CrawlConfig, selectors map[string]string, progress scrapeall.ProgressFunc) (*Result, error) {
	start := time.Now()
	cfg = cfg.Normalize()

	urls, err := c.collectURLs(ctx, siteURL, cfg, progress)
	if err != nil {
		return nil, err
	}

	pages, failed := c.scrapeURLs(ctx, urls, selectors, progress)

	result := &Result{
		RunID:    uuid.NewString(),
		Pages:    pages,
		Failed:   failed,
		Duration: time.Since(start),
	}
	for _, page := range pages {
		result.Sections += len(page.Sections)
		for _, s := range page.Sections {
			result.Characters += len(s.Body)
		}
	}

	return result, nil
}

// collectURLs produces the list of page URLs to scrape. Sitemap URLs are
// capped at the page budget but deliberately not exclude-filtered; only
// crawled URLs pass through the filter.
func (c *Crawler) collectURLs(ctx context.Context, siteURL string, cfg scrapeall.CrawlConfig, progress scrapeall.ProgressFunc) ([]string, error) {
	if cfg.UseSitemap {
		report(progress, 0.05, "Attempting to discover sitemap...")

		found, err := c.Sitemaps.Discover(ctx, siteURL)
		if err != nil && scrapeall.ErrorCode(err) != scrapeall.ENOTFOUND {
			return nil, err
		}
		if len(found) > 0 {
			if len(found) > cfg.MaxPages {
				found = found[:cfg.MaxPages]
			}
			report(progress, 0.5, fmt.Sprintf("Found %d URLs from sitemap", len(found)))
			return found, nil
		}
	}

	report(progress, 0.1, "Discovering pages via crawling...")
	return c.Discover(ctx, siteURL, cfg, progress)
}

// Discover breadth-first crawls from seedURL and returns the page URLs
// reachable within the depth and page budgets, in discovery order.
// Depth, visited, and exclude checks happen at dequeue time; skipped
// records consume no courtesy delay.
func (c *Crawler) Discover(ctx context.Context, seedURL string, cfg scrapeall.CrawlConfig, progress scrapeall.ProgressFunc) ([]string, error) {
	cfg = cfg.Normalize()

	parsed, err := url.Parse(seedURL)
	if err != nil || parsed.Host == "" {
		return nil, scrapeall.Errorf(scrapeall.EINVALID, "invalid site URL %q", seedURL)
	}
	seed := scrapeall.Canonicalize(nil, seedURL)
	if seed == "" {
		return nil, scrapeall.Errorf(scrapeall.EINVALID, "invalid site URL %q", seedURL)
	}

	filter := &scrapeall.URLFilter{Exclude: cfg.ExcludePatterns}
	frontier := NewFrontier(cfg.MaxPages)
	frontier.Push(scrapeall.URLRecord{URL: seed, Source: scrapeall.SourceLink})

	var discovered []string

	for frontier.Len() > 0 && len(discovered) < cfg.MaxPages {
		rec, _ := frontier.Pop()

		if ctx.Err() != nil {
			break
		}
		if rec.Depth > cfg.MaxDepth {
			continue
		}
		if !filter.Match(rec.URL) {
			continue
		}

		fraction := min(float64(len(discovered))/float64(cfg.MaxPages), 0.95)
		report(progress, fraction, fmt.Sprintf("Discovering: %s (depth: %d, found: %d pages)", TruncateURL(rec.URL, 60), rec.Depth, len(discovered)))

		if err := c.wait(ctx, rec.URL); err != nil {
			break
		}

		res, err := c.fetch(ctx, rec.URL)
		if err != nil {
			c.logger().Warn("discovery fetch failed", "url", rec.URL, "err", err)
			continue
		}

		discovered = append(discovered, rec.URL)

		links, err := c.Links.ExtractLinks(res.Body, res.FinalURL)
		if err != nil {
			continue
		}
		for _, link := range links {
			if cfg.StayOnDomain && !scrapeall.SameDomain(link, seed) {
				continue
			}
			frontier.Push(scrapeall.URLRecord{URL: link, Depth: rec.Depth + 1, Source: scrapeall.SourceLink})
		}
	}

	return discovered, nil
}

// ScrapePage fetches one page and extracts its content. Configured
// selectors switch the page to custom-field extraction in place of
// section extraction. Route classification runs when a Classifier is
// wired; if interactive rendering fails it degrades to static
// classification of the fetched body.
func (c *Crawler) ScrapePage(ctx context.Context, pageURL string, selectors map[string]string) (*scrapeall.Page, error) {
	res, err := c.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	page := &scrapeall.Page{
		URL:         res.FinalURL,
		RetrievedAt: time.Now(),
	}

	if len(selectors) > 0 {
		fields, err := c.Custom.ExtractFields(res.Body, selectors)
		if err != nil {
			return nil, err
		}
		page.Fields = fields
		return page, nil
	}

	sections, err := c.Sections.Extract(res.Body)
	if err != nil {
		return nil, err
	}
	page.Sections = sections

	if c.Classifier != nil {
		routes, err := c.Classifier.Classify(ctx, res.FinalURL)
		if err != nil {
			c.logger().Warn("interactive classification unavailable", "url", res.FinalURL, "err", err)
			routes = c.Classifier.ClassifyStatic(res.Body)
		}
		page.Routes = routes
	}

	return page, nil
}

// scrapeURLs fetches and extracts each URL in order, pacing requests per
// domain. Failures are counted and skipped, never fatal.
func (c *Crawler) scrapeURLs(ctx context.Context, urls []string, selectors map[string]string, progress scrapeall.ProgressFunc) ([]*scrapeall.Page, int) {
	report(progress, 0.5, fmt.Sprintf("Found %d pages. Starting scraping...", len(urls)))

	pages := make([]*scrapeall.Page, 0, len(urls))
	failed := 0

	for i, pageURL := range urls {
		if ctx.Err() != nil {
			break
		}

		fraction := 0.5 + float64(i)/float64(len(urls))*0.5
		report(progress, fraction, fmt.Sprintf("Scraping page %d/%d: %s", i+1, len(urls), pageURL))

		if err := c.wait(ctx, pageURL); err != nil {
			break
		}

		page, err := c.ScrapePage(ctx, pageURL, selectors)
		if err != nil {
			failed++
			c.logger().Warn("scrape failed", "url", pageURL, "err", err)
			continue
		}

		pages = append(pages, page)

		if c.Sink != nil {
			if err := c.Sink.Consume(ctx, page); err != nil {
				c.logger().Warn("sink rejected page", "url", page.URL, "err", err)
			}
		}
	}

	return pages, failed
}

// fetch retrieves a page body with retry.
func (c *Crawler) fetch(ctx context.Context, pageURL string) (*scrapeall.FetchResult, error) {
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, pageURL, c.Fetcher.Fetch, c.retryLog, delays)
}

// wait enforces the per-domain courtesy delay.
func (c *Crawler) wait(ctx context.Context, pageURL string) error {
	if c.Limiter == nil {
		return nil
	}
	return c.Limiter.Wait(ctx, scrapeall.Domain(pageURL))
}

func (c *Crawler) retryLog(format string, args ...any) {
	c.logger().Debug(fmt.Sprintf(format, args...))
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// report invokes the progress callback when one is configured.
func report(progress scrapeall.ProgressFunc, fraction float64, message string) {
	if progress != nil {
		progress(fraction, message)
	}
}

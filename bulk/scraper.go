// Package bulk drives product-table scraping: each entry of an injected
// product table is resolved to a page URL under a base URL, scraped,
// route-classified, and reduced to named profile fields.
package bulk

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/manas95826/scrape-all"
	"github.com/manas95826/scrape-all/crawl"
)

// Scraper iterates a product table against a base URL. Classifier, Limiter,
// Sink, and Logger are optional; nil FieldRules takes the built-in rule set.
type Scraper struct {
	Fetcher     scrapeall.Fetcher
	Sections    scrapeall.SectionExtractor
	Classifier  scrapeall.RouteClassifier
	Limiter     scrapeall.DomainLimiter
	Sink        scrapeall.PageSink
	Logger      *slog.Logger
	RetryDelays []time.Duration
	FieldRules  []scrapeall.FieldRule
}

// Result summarizes a bulk scraping run.
type Result struct {
	// RunID uniquely identifies the run in logs and summaries.
	RunID string

	// Pages holds one page per successfully scraped product, in table order.
	Pages []*scrapeall.Page

	// Failed counts products that could not be fetched or extracted.
	Failed int

	// Sections counts extracted sections across all pages.
	Sections int

	// Characters counts section body text across all pages.
	Characters int

	Duration time.Duration
}

// Run scrapes every product in the table. Per-product failures are counted
// and skipped, never fatal; progress advances product by product and ends
// with a completion message at 1.0.
func (s *Scraper) Run(ctx context.Context, baseURL string, products []scrapeall.Product, progress scrapeall.ProgressFunc) (*Result, error) {
	start := time.Now()

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return nil, scrapeall.Errorf(scrapeall.EINVALID, "invalid base URL %q", baseURL)
	}

	result := &Result{RunID: uuid.NewString()}
	total := len(products)

	for i, product := range products {
		if ctx.Err() != nil {
			break
		}

		report(progress, float64(i)/float64(total), fmt.Sprintf("Scraping %s (%d/%d)", product.Name, i+1, total))

		pageURL := joinURL(baseURL, product.URLSlug())

		if err := s.wait(ctx, pageURL); err != nil {
			break
		}

		page, err := s.scrapeProduct(ctx, pageURL)
		if err != nil {
			result.Failed++
			s.logger().Warn("product scrape failed", "product", product.Name, "url", pageURL, "err", err)
			continue
		}

		result.Pages = append(result.Pages, page)

		if s.Sink != nil {
			if err := s.Sink.Consume(ctx, page); err != nil {
				s.logger().Warn("sink rejected page", "url", page.URL, "err", err)
			}
		}
	}

	report(progress, 1.0, fmt.Sprintf("Completed! Scraped %d products.", len(result.Pages)))

	for _, page := range result.Pages {
		result.Sections += len(page.Sections)
		for _, sec := range page.Sections {
			result.Characters += len(sec.Body)
		}
	}
	result.Duration = time.Since(start)

	return result, nil
}

// scrapeProduct fetches one product page and builds its extraction record:
// ordered sections, the route partition, and rule-derived profile fields.
func (s *Scraper) scrapeProduct(ctx context.Context, pageURL string) (*scrapeall.Page, error) {
	delays := s.RetryDelays
	if delays == nil {
		delays = crawl.DefaultRetryDelays()
	}

	res, err := crawl.FetchWithRetryDelays(ctx, pageURL, s.Fetcher.Fetch, s.retryLog, delays)
	if err != nil {
		return nil, err
	}

	sections, err := s.Sections.Extract(res.Body)
	if err != nil {
		return nil, err
	}

	page := &scrapeall.Page{
		URL:         res.FinalURL,
		RetrievedAt: time.Now(),
		Sections:    sections,
	}

	// Product pages switch routes with plain markup, not scripted toggles,
	// so classification never needs a browser here.
	if s.Classifier != nil {
		page.Routes = s.Classifier.ClassifyStatic(res.Body)
	}

	if fields := scrapeall.ApplyFieldRules(sections, s.fieldRules()); len(fields) > 0 {
		page.Fields = fields
	}

	return page, nil
}

// joinURL appends a slug as the final path segment of base.
func joinURL(base, slug string) string {
	return strings.TrimRight(base, "/") + "/" + slug
}

func (s *Scraper) wait(ctx context.Context, pageURL string) error {
	if s.Limiter == nil {
		return nil
	}
	return s.Limiter.Wait(ctx, scrapeall.Domain(pageURL))
}

func (s *Scraper) fieldRules() []scrapeall.FieldRule {
	if s.FieldRules != nil {
		return s.FieldRules
	}
	return scrapeall.DefaultFieldRules()
}

func (s *Scraper) retryLog(format string, args ...any) {
	s.logger().Debug(fmt.Sprintf(format, args...))
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// report invokes the progress callback when one is configured.
func report(progress scrapeall.ProgressFunc, fraction float64, message string) {
	if progress != nil {
		progress(fraction, message)
	}
}

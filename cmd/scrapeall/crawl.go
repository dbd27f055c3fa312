package main

import (
	"fmt"
	"io"
	"time"

	"github.com/manas95826/scrape-all"
	"github.com/manas95826/scrape-all/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	selectors, err := loadSelectors(c.Selectors)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	cfg := scrapeall.CrawlConfig{
		MaxPages:     c.MaxPages,
		MaxDepth:     c.MaxDepth,
		StayOnDomain: c.StayOnDomain,
		UseSitemap:   c.Sitemap,
	}
	if len(c.Exclude) > 0 {
		cfg.ExcludePatterns = scrapeall.CompilePatterns(c.Exclude)
	}

	progress := newProgressSpinner(deps.Stderr)
	result, err := deps.Crawler.Run(deps.Ctx, c.URL, cfg, selectors, progress.update)
	progress.stop()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapeall.ErrorMessage(err))
		return err
	}

	printSummary(deps.Stdout, result.RunID, len(result.Pages), result.Failed, result.Sections, result.Characters, result.Duration)
	return nil
}

// printSummary writes the end-of-run accounting shared by crawl and bulk.
func printSummary(w io.Writer, runID string, pages, failed, sections, characters int, d time.Duration) {
	fmt.Fprintf(w, "Scraped %d pages (%d sections, %s) in %s\n",
		pages, sections, crawl.FormatCharacters(characters), d.Round(time.Millisecond))
	if failed > 0 {
		fmt.Fprintf(w, "  %d failed\n", failed)
	}
	fmt.Fprintf(w, "  run %s\n", runID)
}

package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/manas95826/scrape-all"
	"github.com/manas95826/scrape-all/goquery"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	selectors, err := loadSelectors(c.Selectors)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	page, err := deps.Crawler.ScrapePage(deps.Ctx, c.URL, selectors)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapeall.ErrorMessage(err))
		return err
	}

	printPage(deps.Stdout, page)
	return nil
}

// loadSelectors reads a selector file into a field-to-selector map. An
// empty path means no custom selectors.
func loadSelectors(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return goquery.ParseSelectors(string(data)), nil
}

// printPage writes a scraped page as readable text: the final URL, each
// section under a heading, then any custom fields and route counts.
func printPage(w io.Writer, page *scrapeall.Page) {
	fmt.Fprintln(w, page.URL)

	for _, sec := range page.Sections {
		fmt.Fprintf(w, "\n## %s\n%s\n", sec.Title, sec.Body)
	}

	if len(page.Fields) > 0 {
		fmt.Fprintln(w)
		for _, name := range slices.Sorted(maps.Keys(page.Fields)) {
			fmt.Fprintf(w, "%s: %v\n", name, page.Fields[name].Value())
		}
	}

	if page.Routes != nil {
		fmt.Fprintln(w)
		for _, route := range scrapeall.Routes() {
			if n := len(page.Routes[route]); n > 0 {
				fmt.Fprintf(w, "%s: %d sections\n", route, n)
			}
		}
	}
}

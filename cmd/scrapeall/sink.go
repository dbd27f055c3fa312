package main

import (
	"context"
	"fmt"
	"io"

	"github.com/manas95826/scrape-all"
	"github.com/manas95826/scrape-all/crawl"
)

// Ensure PrinterSink implements scrapeall.PageSink.
var _ scrapeall.PageSink = (*PrinterSink)(nil)

// PrinterSink prints a one-line summary of each scraped page as it
// completes.
type PrinterSink struct {
	W io.Writer
}

func (s *PrinterSink) Consume(_ context.Context, page *scrapeall.Page) error {
	chars := 0
	for _, sec := range page.Sections {
		chars += len(sec.Body)
	}
	_, err := fmt.Fprintf(s.W, "%s  %d sections  %s\n", page.URL, len(page.Sections), crawl.FormatCharacters(chars))
	return err
}

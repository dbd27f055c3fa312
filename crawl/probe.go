package crawl

import "github.com/manas95826/scrape-all"

// NeedsRendering compares content extracted from a plain HTTP fetch
// against the browser-rendered version of the same page. Returns true if
// rendering yields significantly more section text (>50%), suggesting
// JavaScript builds meaningful content. Also returns true on extraction
// errors (assumes rendering is needed).
func NeedsRendering(httpHTML, renderedHTML string, extractor scrapeall.SectionExtractor) bool {
	plain, err := extractor.Extract(httpHTML)
	if err != nil {
		return true
	}

	rendered, err := extractor.Extract(renderedHTML)
	if err != nil {
		return true
	}

	plainLen := sectionChars(plain)
	renderedLen := sectionChars(rendered)

	// Handle empty static content
	if plainLen == 0 && renderedLen > 0 {
		return true
	}

	// Check if rendered content is >50% longer
	threshold := float64(plainLen) * 1.5
	return float64(renderedLen) > threshold
}

func sectionChars(sections []scrapeall.Section) int {
	total := 0
	for _, s := range sections {
		total += len(s.Title) + len(s.Body)
	}
	return total
}

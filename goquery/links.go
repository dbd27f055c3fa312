// Package goquery provides DOM-based implementations of the extraction
// interfaces: outbound link collection, section extraction, and custom
// selector evaluation.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/manas95826/scrape-all"
)

// Ensure LinkExtractor implements scrapeall.LinkExtractor at compile time.
var _ scrapeall.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor collects canonical outbound links from anchor elements.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses HTML and returns canonical absolute link URLs,
// deduplicated in document order.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, scrapeall.Errorf(scrapeall.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scrapeall.Errorf(scrapeall.EINVALID, "failed to parse HTML: %v", err)
	}

	var links []string
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}

		canonical := scrapeall.Canonicalize(base, href)
		if canonical == "" || seen[canonical] {
			return
		}

		seen[canonical] = true
		links = append(links, canonical)
	})

	return links, nil
}

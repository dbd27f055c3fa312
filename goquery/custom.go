package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/manas95826/scrape-all"
)

// Ensure CustomExtractor implements scrapeall.CustomExtractor.
var _ scrapeall.CustomExtractor = (*CustomExtractor)(nil)

// CustomExtractor evaluates caller-supplied CSS selectors against page
// HTML, one named output field per selector.
type CustomExtractor struct{}

// NewCustomExtractor creates a new CustomExtractor.
func NewCustomExtractor() *CustomExtractor {
	return &CustomExtractor{}
}

// ExtractFields evaluates each selector against the document. A selector
// matching one element yields a scalar field, several elements a list,
// none no field at all. Selectors that fail to compile are discarded.
func (e *CustomExtractor) ExtractFields(htmlStr string, selectors map[string]string) (map[string]scrapeall.CustomField, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, scrapeall.Errorf(scrapeall.EINVALID, "failed to parse HTML: %v", err)
	}

	fields := make(map[string]scrapeall.CustomField)

	for field, selector := range selectors {
		matcher, err := cascadia.Compile(selector)
		if err != nil {
			continue
		}

		var values []string
		doc.FindMatcher(matcher).Each(func(_ int, sel *goquery.Selection) {
			if len(sel.Nodes) == 0 {
				return
			}
			values = append(values, normalizeSpace(nodeText(sel.Nodes[0])))
		})

		if len(values) > 0 {
			fields[field] = scrapeall.CustomField{Values: values, Single: len(values) == 1}
		}
	}

	return fields, nil
}

// ParseSelectors reads a field-to-selector mapping from newline-delimited
// "name: selector" text. Lines without a colon, with an empty side, or
// with a selector that fails to compile are skipped.
func ParseSelectors(text string) map[string]string {
	selectors := make(map[string]string)

	for _, line := range strings.Split(text, "\n") {
		name, selector, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		name = strings.TrimSpace(name)
		selector = strings.TrimSpace(selector)
		if name == "" || selector == "" {
			continue
		}

		if _, err := cascadia.Compile(selector); err != nil {
			continue
		}

		selectors[name] = selector
	}

	return selectors
}

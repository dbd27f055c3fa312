package mock

import "github.com/manas95826/scrape-all"

var _ scrapeall.SectionExtractor = (*SectionExtractor)(nil)

// SectionExtractor is a mock implementation of scrapeall.SectionExtractor.
type SectionExtractor struct {
	ExtractFn func(html string) ([]scrapeall.Section, error)
}

func (e *SectionExtractor) Extract(html string) ([]scrapeall.Section, error) {
	return e.ExtractFn(html)
}

var _ scrapeall.CustomExtractor = (*CustomExtractor)(nil)

// CustomExtractor is a mock implementation of scrapeall.CustomExtractor.
type CustomExtractor struct {
	ExtractFieldsFn func(html string, selectors map[string]string) (map[string]scrapeall.CustomField, error)
}

func (e *CustomExtractor) ExtractFields(html string, selectors map[string]string) (map[string]scrapeall.CustomField, error) {
	return e.ExtractFieldsFn(html, selectors)
}

var _ scrapeall.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of scrapeall.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}

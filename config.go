package scrapeall

import (
	"regexp"
	"strings"
	"time"
)

// Crawl budget defaults and hard ceilings.
const (
	DefaultMaxPages = 50
	DefaultMaxDepth = 3
	MaxPagesLimit   = 1000
	MaxDepthLimit   = 10
)

// UserAgent identifies every request, whether made over plain HTTP or by a
// browser backend. Kept stable so runs are reproducible.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultDelay is the courtesy pause between requests to the same host.
const DefaultDelay = 1 * time.Second

// CrawlConfig bounds a single crawl invocation. The zero value normalizes
// to the defaults.
type CrawlConfig struct {
	// MaxPages caps the number of discovered pages.
	MaxPages int

	// MaxDepth caps link-following depth from the seed.
	MaxDepth int

	// StayOnDomain restricts link following to the seed's host.
	StayOnDomain bool

	// ExcludePatterns skips matching URLs; they are neither fetched nor
	// counted toward MaxPages.
	ExcludePatterns []*regexp.Regexp

	// UseSitemap tries sitemap discovery before link crawling.
	UseSitemap bool
}

// Normalize applies defaults and hard ceilings and returns the result.
// Non-positive budgets take the defaults, budgets above the ceilings are
// clamped, and an empty pattern list takes DefaultExcludePatterns.
func (c CrawlConfig) Normalize() CrawlConfig {
	if c.MaxPages <= 0 {
		c.MaxPages = DefaultMaxPages
	}
	if c.MaxPages > MaxPagesLimit {
		c.MaxPages = MaxPagesLimit
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.MaxDepth > MaxDepthLimit {
		c.MaxDepth = MaxDepthLimit
	}
	if len(c.ExcludePatterns) == 0 {
		c.ExcludePatterns = DefaultExcludePatterns()
	}
	return c
}

// CompilePatterns compiles raw regular expressions into exclude patterns,
// silently discarding blank lines and any expression that fails to compile.
// An empty result falls back to DefaultExcludePatterns.
func CompilePatterns(raw []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(raw))

	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		re, err := regexp.Compile(r)
		if err != nil {
			continue
		}
		patterns = append(patterns, re)
	}

	if len(patterns) == 0 {
		return DefaultExcludePatterns()
	}
	return patterns
}

// DefaultExcludePatterns returns the built-in skip list: binary asset
// extensions plus fragment- and query-bearing URLs.
func DefaultExcludePatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`\.(pdf|jpg|jpeg|png|gif|zip|tar|gz|exe)$`),
		regexp.MustCompile(`#`),
		regexp.MustCompile(`\?`),
	}
}

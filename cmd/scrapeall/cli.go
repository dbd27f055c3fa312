package main

import (
	"context"
	"io"
	"time"

	"github.com/manas95826/scrape-all"
	"github.com/manas95826/scrape-all/bulk"
	"github.com/manas95826/scrape-all/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Fetcher  scrapeall.Fetcher
	Sections scrapeall.SectionExtractor
	Renderer scrapeall.Renderer
	Crawler  *crawl.Crawler
	Scraper  *bulk.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape ScrapeCmd `cmd:"" help:"Scrape a single page and print its sections"`
	Crawl  CrawlCmd  `cmd:"" help:"Discover and scrape every page of a site"`
	Bulk   BulkCmd   `cmd:"" help:"Scrape a product table against a base URL"`
	Probe  ProbeCmd  `cmd:"" help:"Report whether a page needs browser rendering"`

	Renderer string        `enum:"rod,chromedp" default:"rod" help:"Browser backend (rod or chromedp)"`
	Delay    time.Duration `default:"1s" help:"Courtesy delay between requests to the same domain"`
	Timeout  time.Duration `short:"t" default:"10s" help:"HTTP fetch timeout"`
	Verbose  bool          `short:"v" help:"Log every service call with timings"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL       string `arg:"" help:"Page URL"`
	Selectors string `short:"s" help:"File of custom selectors, one 'field: selector' per line"`
	Classify  bool   `short:"c" help:"Drive route toggles and partition sections by route"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL          string   `arg:"" help:"Site URL to crawl"`
	MaxPages     int      `default:"50" help:"Page budget"`
	MaxDepth     int      `default:"3" help:"Link-following depth budget"`
	StayOnDomain bool     `default:"true" negatable:"" help:"Restrict crawling to the seed domain"`
	Sitemap      bool     `default:"true" negatable:"" help:"Try sitemap discovery before link crawling"`
	Exclude      []string `short:"x" help:"Skip URLs matching regex (repeatable)"`
	Selectors    string   `short:"s" help:"File of custom selectors, one 'field: selector' per line"`
	Classify     bool     `short:"c" help:"Drive route toggles and partition sections by route"`
}

// BulkCmd is the "bulk" subcommand.
type BulkCmd struct {
	BaseURL  string `arg:"" help:"Base URL product slugs are appended to"`
	Products string `arg:"" help:"JSON product table file"`
	Rules    string `short:"r" help:"JSON field rule file (default: built-in rules)"`
	Classify bool   `default:"true" negatable:"" help:"Partition sections by administration route"`
}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct {
	URL string `arg:"" help:"Page URL to probe"`
}

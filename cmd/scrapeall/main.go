package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/manas95826/scrape-all"
	"github.com/manas95826/scrape-all/bulk"
	"github.com/manas95826/scrape-all/chromedp"
	"github.com/manas95826/scrape-all/classify"
	"github.com/manas95826/scrape-all/crawl"
	"github.com/manas95826/scrape-all/goquery"
	scrapehttp "github.com/manas95826/scrape-all/http"
	"github.com/manas95826/scrape-all/rod"
	scrapeslog "github.com/manas95826/scrape-all/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("scrapeall"),
		kong.Description("Scrape content sites with route-aware section extraction"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'scrapeall --help' to see available commands")
	}
	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fetcher := scrapehttp.NewFetcher(scrapehttp.WithTimeout(cli.Timeout))
	defer fetcher.Close()
	deps.Fetcher = fetcher
	if cli.Verbose {
		deps.Fetcher = scrapeslog.NewLoggingFetcher(fetcher, logger)
	}

	var sitemaps scrapeall.SitemapService = scrapehttp.NewSitemapService(deps.Fetcher)
	if cli.Verbose {
		sitemaps = scrapeslog.NewLoggingSitemapService(sitemaps, logger)
	}

	sections := goquery.NewSectionExtractor()
	deps.Sections = sections

	cmd := commandName(kongCtx)

	if needsBrowser(cmd, cli) {
		renderer, err := newRenderer(cli.Renderer)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer renderer.Close()
		deps.Renderer = renderer
		if cli.Verbose {
			deps.Renderer = scrapeslog.NewLoggingRenderer(renderer, logger)
		}
	}

	var classifier scrapeall.RouteClassifier
	if classifyRequested(cmd, cli) {
		classifier = &classify.Classifier{
			Renderer: deps.Renderer,
			Sections: sections,
			Logger:   logger,
		}
		if cli.Verbose {
			classifier = scrapeslog.NewLoggingRouteClassifier(classifier, logger)
		}
	}

	limiter := crawl.NewDomainLimiter(cli.Delay)

	deps.Crawler = &crawl.Crawler{
		Fetcher:    deps.Fetcher,
		Sitemaps:   sitemaps,
		Sections:   sections,
		Custom:     goquery.NewCustomExtractor(),
		Links:      goquery.NewLinkExtractor(),
		Classifier: classifier,
		Limiter:    limiter,
		Sink:       &PrinterSink{W: stdout},
		Logger:     logger,
	}

	deps.Scraper = &bulk.Scraper{
		Fetcher:    deps.Fetcher,
		Sections:   sections,
		Classifier: classifier,
		Limiter:    limiter,
		Sink:       &PrinterSink{W: stdout},
		Logger:     logger,
	}

	return kongCtx.Run(deps)
}

// commandName returns the leading word of the resolved Kong command.
func commandName(kongCtx *kong.Context) string {
	name, _, _ := strings.Cut(kongCtx.Command(), " ")
	return name
}

// needsBrowser reports whether the resolved command renders pages.
func needsBrowser(cmd string, cli *CLI) bool {
	switch cmd {
	case "probe":
		return true
	case "scrape":
		return cli.Scrape.Classify
	case "crawl":
		return cli.Crawl.Classify
	}
	return false
}

// classifyRequested reports whether the resolved command partitions
// sections by route. Bulk classification is static, so it gets a
// classifier without a renderer.
func classifyRequested(cmd string, cli *CLI) bool {
	switch cmd {
	case "scrape":
		return cli.Scrape.Classify
	case "crawl":
		return cli.Crawl.Classify
	case "bulk":
		return cli.Bulk.Classify
	}
	return false
}

func newRenderer(backend string) (scrapeall.Renderer, error) {
	if backend == "chromedp" {
		return chromedp.NewRenderer()
	}
	return rod.NewRenderer()
}

package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/manas95826/scrape-all"
	main "github.com/manas95826/scrape-all/cmd/scrapeall"
	"github.com/manas95826/scrape-all/crawl"
	"github.com/manas95826/scrape-all/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints a line per page and a summary", func(t *testing.T) {
		t.Parallel()

		bodies := map[string]string{
			"https://pep.test/bpc-157": "bpc body",
			"https://pep.test/tb-500":  "tb body",
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Crawler: &crawl.Crawler{
				Fetcher: &mock.Fetcher{
					FetchFn: func(_ context.Context, url string) (*scrapeall.FetchResult, error) {
						body, ok := bodies[url]
						if !ok {
							return nil, scrapeall.Errorf(scrapeall.EUNAVAILABLE, "fetch %s: connection refused", url)
						}
						return &scrapeall.FetchResult{Body: body, FinalURL: url}, nil
					},
				},
				Sitemaps: &mock.SitemapService{
					DiscoverFn: func(_ context.Context, siteURL string) ([]string, error) {
						return []string{"https://pep.test/bpc-157", "https://pep.test/tb-500"}, nil
					},
				},
				Sections: &mock.SectionExtractor{
					ExtractFn: func(html string) ([]scrapeall.Section, error) {
						return []scrapeall.Section{{Title: "Overview", Body: html}}, nil
					},
				},
				Sink:        &main.PrinterSink{W: stdout},
				Logger:      discardLogger(),
				RetryDelays: []time.Duration{0}, // no delay for tests
			},
		}

		cmd := &main.CrawlCmd{URL: "https://pep.test", MaxPages: 10, MaxDepth: 2, StayOnDomain: true, Sitemap: true}
		err := cmd.Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "https://pep.test/bpc-157  1 sections  8 chars")
		assert.Contains(t, output, "https://pep.test/tb-500  1 sections  7 chars")
		assert.Contains(t, output, "Scraped 2 pages (2 sections, 15 chars)")
		assert.Contains(t, output, "run ")
	})

	t.Run("counts failed pages in the summary", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Crawler: &crawl.Crawler{
				Fetcher: &mock.Fetcher{
					FetchFn: func(_ context.Context, url string) (*scrapeall.FetchResult, error) {
						if url == "https://pep.test/tb-500" {
							return nil, scrapeall.Errorf(scrapeall.EUNAVAILABLE, "fetch %s: connection refused", url)
						}
						return &scrapeall.FetchResult{Body: "bpc body", FinalURL: url}, nil
					},
				},
				Sitemaps: &mock.SitemapService{
					DiscoverFn: func(_ context.Context, siteURL string) ([]string, error) {
						return []string{"https://pep.test/bpc-157", "https://pep.test/tb-500"}, nil
					},
				},
				Sections: &mock.SectionExtractor{
					ExtractFn: func(html string) ([]scrapeall.Section, error) {
						return []scrapeall.Section{{Title: "Overview", Body: html}}, nil
					},
				},
				Logger:      discardLogger(),
				RetryDelays: []time.Duration{0}, // no delay for tests
			},
		}

		cmd := &main.CrawlCmd{URL: "https://pep.test", MaxPages: 10, MaxDepth: 2, StayOnDomain: true, Sitemap: true}
		err := cmd.Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Scraped 1 pages (1 sections, 8 chars)")
		assert.Contains(t, output, "1 failed")
	})

	t.Run("reports an invalid site URL on stderr", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Crawler: &crawl.Crawler{
				Logger:      discardLogger(),
				RetryDelays: []time.Duration{0}, // no delay for tests
			},
		}

		cmd := &main.CrawlCmd{URL: "not-a-url", MaxPages: 10, MaxDepth: 2}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, scrapeall.EINVALID, scrapeall.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: invalid site URL")
	})
}

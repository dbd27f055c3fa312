package main_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/manas95826/scrape-all"
	main "github.com/manas95826/scrape-all/cmd/scrapeall"
	"github.com/manas95826/scrape-all/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeCmd_Run(t *testing.T) {
	t.Parallel()

	// passthrough turns the whole document into one section so the
	// verdict tracks raw content length.
	passthrough := &mock.SectionExtractor{
		ExtractFn: func(html string) ([]scrapeall.Section, error) {
			return []scrapeall.Section{{Body: html}}, nil
		},
	}

	t.Run("flags a page whose content only appears after rendering", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (*scrapeall.FetchResult, error) {
					return &scrapeall.FetchResult{Body: "<div id=root></div>", FinalURL: url}, nil
				},
			},
			Renderer: &mock.Renderer{
				RenderFn: func(_ context.Context, pageURL string) (string, error) {
					return strings.Repeat("rendered product copy ", 10), nil
				},
			},
			Sections: passthrough,
		}

		cmd := &main.ProbeCmd{URL: "https://pep.test/bpc-157"}
		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Equal(t, "https://pep.test/bpc-157 needs browser rendering\n", stdout.String())
	})

	t.Run("recognizes statically served content", func(t *testing.T) {
		t.Parallel()

		const body = "<article>full product page content</article>"

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (*scrapeall.FetchResult, error) {
					return &scrapeall.FetchResult{Body: body, FinalURL: url}, nil
				},
			},
			Renderer: &mock.Renderer{
				RenderFn: func(_ context.Context, pageURL string) (string, error) {
					return body, nil
				},
			},
			Sections: passthrough,
		}

		cmd := &main.ProbeCmd{URL: "https://pep.test/bpc-157"}
		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Equal(t, "https://pep.test/bpc-157 serves its content statically\n", stdout.String())
	})

	t.Run("reports fetch failures on stderr", func(t *testing.T) {
		t.Parallel()

		rendered := false
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (*scrapeall.FetchResult, error) {
					return nil, scrapeall.Errorf(scrapeall.EUNAVAILABLE, "connection refused")
				},
			},
			Renderer: &mock.Renderer{
				RenderFn: func(_ context.Context, pageURL string) (string, error) {
					rendered = true
					return "", nil
				},
			},
			Sections: passthrough,
		}

		cmd := &main.ProbeCmd{URL: "https://pep.test/bpc-157"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: connection refused")
		assert.False(t, rendered, "should not render after a failed fetch")
	})

	t.Run("reports render failures on stderr", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (*scrapeall.FetchResult, error) {
					return &scrapeall.FetchResult{Body: "<html></html>", FinalURL: url}, nil
				},
			},
			Renderer: &mock.Renderer{
				RenderFn: func(_ context.Context, pageURL string) (string, error) {
					return "", scrapeall.Errorf(scrapeall.EUNAVAILABLE, "browser not found")
				},
			},
			Sections: passthrough,
		}

		cmd := &main.ProbeCmd{URL: "https://pep.test/bpc-157"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: browser not found")
	})
}

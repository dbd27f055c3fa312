package mock

import (
	"context"

	"github.com/manas95826/scrape-all"
)

var _ scrapeall.RouteClassifier = (*RouteClassifier)(nil)

// RouteClassifier is a mock implementation of scrapeall.RouteClassifier.
type RouteClassifier struct {
	ClassifyFn       func(ctx context.Context, pageURL string) (map[scrapeall.Route][]scrapeall.Section, error)
	ClassifyStaticFn func(htmlStr string) map[scrapeall.Route][]scrapeall.Section
}

func (c *RouteClassifier) Classify(ctx context.Context, pageURL string) (map[scrapeall.Route][]scrapeall.Section, error) {
	return c.ClassifyFn(ctx, pageURL)
}

func (c *RouteClassifier) ClassifyStatic(htmlStr string) map[scrapeall.Route][]scrapeall.Section {
	return c.ClassifyStaticFn(htmlStr)
}

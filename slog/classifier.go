package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/manas95826/scrape-all"
)

// Ensure LoggingRouteClassifier implements scrapeall.RouteClassifier.
var _ scrapeall.RouteClassifier = (*LoggingRouteClassifier)(nil)

// LoggingRouteClassifier wraps a RouteClassifier with debug logging.
type LoggingRouteClassifier struct {
	next   scrapeall.RouteClassifier
	logger *slog.Logger
}

// NewLoggingRouteClassifier creates a new LoggingRouteClassifier.
func NewLoggingRouteClassifier(next scrapeall.RouteClassifier, logger *slog.Logger) *LoggingRouteClassifier {
	return &LoggingRouteClassifier{next: next, logger: logger}
}

// Classify delegates to the wrapped classifier and logs the partition.
func (c *LoggingRouteClassifier) Classify(ctx context.Context, pageURL string) (routes map[scrapeall.Route][]scrapeall.Section, err error) {
	defer func(begin time.Time) {
		nonEmpty, sections := routeCounts(routes)
		c.logger.Info("route classification",
			"url", pageURL,
			"routes", nonEmpty,
			"sections", sections,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Classify(ctx, pageURL)
}

// ClassifyStatic delegates to the wrapped classifier and logs the partition.
func (c *LoggingRouteClassifier) ClassifyStatic(html string) map[scrapeall.Route][]scrapeall.Section {
	begin := time.Now()
	routes := c.next.ClassifyStatic(html)
	nonEmpty, sections := routeCounts(routes)
	c.logger.Info("static route classification",
		"routes", nonEmpty,
		"sections", sections,
		"duration", time.Since(begin),
	)
	return routes
}

// routeCounts reports how many routes received content and the total
// section count across all routes.
func routeCounts(routes map[scrapeall.Route][]scrapeall.Section) (nonEmpty, sections int) {
	for _, secs := range routes {
		if len(secs) > 0 {
			nonEmpty++
		}
		sections += len(secs)
	}
	return nonEmpty, sections
}

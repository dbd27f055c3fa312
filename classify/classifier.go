// Package classify partitions extracted page content among administration
// routes. Interactive classification drives a headless browser through the
// page's route toggles and detects content changes between states; when
// toggles are missing or ineffective it degrades to per-section keyword
// separation of the initially rendered content.
package classify

import (
	"context"
	"log/slog"

	"github.com/manas95826/scrape-all"
)

// Compile-time interface verification.
var _ scrapeall.RouteClassifier = (*Classifier)(nil)

// Classifier implements route classification over a Renderer and a
// SectionExtractor. Keywords and Logger are optional: nil Keywords takes
// the built-in indicator table, nil Logger falls back to slog.Default().
type Classifier struct {
	Renderer scrapeall.Renderer
	Sections scrapeall.SectionExtractor
	Keywords scrapeall.RouteKeywords
	Logger   *slog.Logger
}

// Classify renders pageURL and partitions its content by route. The
// initially rendered state is attributed to the highest-scoring route;
// every other route's toggle is located and activated in priority order,
// and a re-extraction that differs from the previous state is attributed
// to that route. When fewer than two routes end up with content the whole
// page is re-partitioned by per-section keyword separation instead.
// Toggle misses and interaction failures degrade the result, never fail
// it; the only error is the initial render being unavailable.
func (c *Classifier) Classify(ctx context.Context, pageURL string) (map[scrapeall.Route][]scrapeall.Section, error) {
	if c.Renderer == nil {
		return nil, scrapeall.Errorf(scrapeall.EUNAVAILABLE, "no renderer configured")
	}

	initialHTML, err := c.Renderer.Render(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	initialSections, err := c.Sections.Extract(initialHTML)
	if err != nil {
		return nil, err
	}

	initial := scrapeall.ScoreSections(initialSections, c.keywords()).Best()

	buckets := emptyBuckets()
	buckets[initial] = assignRoute(initialSections, initial)

	// Each successful toggle becomes the reference state for the next
	// comparison, so route B's content is compared against route A's, not
	// against the initial state it replaced.
	current := initialSections

	for _, route := range scrapeall.Routes() {
		if route == initial {
			continue
		}

		sections, ok := c.toggleTo(ctx, pageURL, route)
		if !ok {
			continue
		}
		if sameContent(current, sections) {
			c.logger().Debug("toggle ineffective", "url", pageURL, "route", route)
			continue
		}

		buckets[route] = assignRoute(sections, route)
		current = sections
	}

	if countNonEmpty(buckets) < 2 {
		c.logger().Debug("separating by keywords", "url", pageURL, "route", initial)
		return separate(initialSections, initial, c.keywords()), nil
	}

	return buckets, nil
}

// toggleTo locates and activates the toggle for route and extracts the
// post-toggle content. Any failure along the way reports false: a missing
// toggle is an expected outcome and a rendering fault is deliberately
// indistinguishable from one here.
func (c *Classifier) toggleTo(ctx context.Context, pageURL string, route scrapeall.Route) ([]scrapeall.Section, bool) {
	handle, err := c.Renderer.LocateToggle(ctx, route)
	if err != nil {
		if scrapeall.ErrorCode(err) != scrapeall.ENOTFOUND {
			c.logger().Warn("toggle search failed", "url", pageURL, "route", route, "err", err)
		}
		return nil, false
	}

	html, err := c.Renderer.Activate(ctx, handle)
	if err != nil {
		c.logger().Warn("toggle activation failed", "url", pageURL, "route", route, "toggle", handle.Describe(), "err", err)
		return nil, false
	}

	sections, err := c.Sections.Extract(html)
	if err != nil {
		c.logger().Warn("post-toggle extraction failed", "url", pageURL, "route", route, "err", err)
		return nil, false
	}

	return sections, true
}

// separate assigns each section to the route its own title and body score
// highest for. Sections with no keyword hits stay with the page's initial
// route.
func separate(sections []scrapeall.Section, initial scrapeall.Route, keywords scrapeall.RouteKeywords) map[scrapeall.Route][]scrapeall.Section {
	buckets := emptyBuckets()

	for _, s := range sections {
		score := scrapeall.ScoreText(s.Title, s.Body, keywords)

		route := initial
		if !allZero(score) {
			route = score.Best()
		}

		s.Route = route
		buckets[route] = append(buckets[route], s)
	}

	return buckets
}

// assignRoute stamps every section with the route it was attributed to.
func assignRoute(sections []scrapeall.Section, route scrapeall.Route) []scrapeall.Section {
	for i := range sections {
		sections[i].Route = route
	}
	return sections
}

// emptyBuckets returns a partition with every known route present.
func emptyBuckets() map[scrapeall.Route][]scrapeall.Section {
	buckets := make(map[scrapeall.Route][]scrapeall.Section, len(scrapeall.Routes()))
	for _, route := range scrapeall.Routes() {
		buckets[route] = []scrapeall.Section{}
	}
	return buckets
}

func countNonEmpty(buckets map[scrapeall.Route][]scrapeall.Section) int {
	n := 0
	for _, sections := range buckets {
		if len(sections) > 0 {
			n++
		}
	}
	return n
}

func allZero(score scrapeall.RouteScore) bool {
	for _, n := range score {
		if n > 0 {
			return false
		}
	}
	return true
}

func (c *Classifier) keywords() scrapeall.RouteKeywords {
	if c.Keywords != nil {
		return c.Keywords
	}
	return scrapeall.DefaultRouteKeywords()
}

func (c *Classifier) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

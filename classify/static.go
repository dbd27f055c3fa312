package classify

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/manas95826/scrape-all"
)

// routeContainerSelector matches the containers toggle-based layouts use
// to hold one route's content.
func routeContainerSelector(route scrapeall.Route) string {
	return fmt.Sprintf(`[data-tab=%q], [data-route=%q], .%s-content, #%s-content, .%s.tab-panel`,
		route, route, route, route, route)
}

// ClassifyStatic partitions an already-fetched document without browser
// interaction. Markup with route-specific containers is partitioned by
// container; anything else is extracted whole and separated per section
// by keyword scoring. Every known route key is present in the result.
func (c *Classifier) ClassifyStatic(htmlStr string) map[scrapeall.Route][]scrapeall.Section {
	buckets := emptyBuckets()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err == nil && c.fillFromContainers(doc, buckets) {
		return buckets
	}

	sections, err := c.Sections.Extract(htmlStr)
	if err != nil {
		return buckets
	}

	initial := scrapeall.ScoreSections(sections, c.keywords()).Best()
	return separate(sections, initial, c.keywords())
}

// fillFromContainers extracts per-route content from route containers into
// buckets. Reports whether any container matched; a matched container
// claims its route even when nothing extractable is inside it.
func (c *Classifier) fillFromContainers(doc *goquery.Document, buckets map[scrapeall.Route][]scrapeall.Section) bool {
	found := false

	for _, route := range scrapeall.Routes() {
		container := doc.Find(routeContainerSelector(route)).First()
		if container.Length() == 0 {
			continue
		}
		found = true

		fragment, err := goquery.OuterHtml(container)
		if err != nil {
			continue
		}
		if sections, err := c.Sections.Extract(fragment); err == nil && len(sections) > 0 {
			buckets[route] = assignRoute(sections, route)
		}
	}

	return found
}

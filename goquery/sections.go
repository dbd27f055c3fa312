package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/manas95826/scrape-all"
	"golang.org/x/net/html"
)

// Content length floors, in characters of normalized text. Fragments at
// or below the floor are treated as noise.
const (
	minFragmentLength  = 10
	minContainerLength = 20
)

// titleWordCount bounds titles derived from leading body text.
const titleWordCount = 10

// containerSelector matches elements commonly used to group standalone
// content blocks.
const containerSelector = ".content, .section, article, .card"

// bulkBlockSelector matches the generic block elements swept by the
// final extraction pass.
const bulkBlockSelector = "div, section, article, main"

// chromeClasses mark containers holding page furniture rather than
// content.
var chromeClasses = []string{"nav", "footer", "header", "menu", "sidebar"}

// Ensure SectionExtractor implements scrapeall.SectionExtractor.
var _ scrapeall.SectionExtractor = (*SectionExtractor)(nil)

// SectionExtractor derives titled sections from page HTML. Three passes
// run in order (heading outline, content containers, generic blocks) and
// their candidates merge first-wins by normalized title.
type SectionExtractor struct{}

// NewSectionExtractor creates a new SectionExtractor.
func NewSectionExtractor() *SectionExtractor {
	return &SectionExtractor{}
}

// Extract runs all passes over the document and returns deduplicated
// sections.
func (e *SectionExtractor) Extract(htmlStr string) ([]scrapeall.Section, error) {
	if htmlStr == "" {
		return nil, scrapeall.Errorf(scrapeall.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, scrapeall.Errorf(scrapeall.EINVALID, "failed to parse HTML: %v", err)
	}

	var candidates []scrapeall.Section
	candidates = append(candidates, headingSections(doc)...)
	candidates = append(candidates, containerSections(doc, containerSelector)...)
	candidates = append(candidates, containerSections(doc, bulkBlockSelector)...)

	return scrapeall.DedupSections(candidates), nil
}

// headingSections walks the document outline: each heading starts a
// section whose body accumulates following-sibling text up to the next
// heading of equal or higher level.
func headingSections(doc *goquery.Document) []scrapeall.Section {
	var sections []scrapeall.Section

	pageTitle := normalizeSpace(doc.Find("title").First().Text())
	if pageTitle != "" {
		sections = append(sections, scrapeall.Section{Title: pageTitle})
	}

	headings := doc.Find("h1, h2, h3, h4, h5, h6")
	headings.Each(func(_ int, sel *goquery.Selection) {
		if len(sel.Nodes) == 0 {
			return
		}
		node := sel.Nodes[0]

		title := normalizeSpace(nodeText(node))
		if title == "" {
			return
		}

		sections = append(sections, scrapeall.Section{
			Title: title,
			Body:  siblingText(node),
		})
	})

	// Pages without any headings fall back to paragraph text gathered
	// under the page title.
	if headings.Length() == 0 && pageTitle != "" {
		var parts []string
		doc.Find("p").Each(func(_ int, p *goquery.Selection) {
			if len(p.Nodes) == 0 {
				return
			}
			if text := normalizeSpace(nodeText(p.Nodes[0])); len(text) > minFragmentLength {
				parts = append(parts, text)
			}
		})
		if len(parts) > 0 {
			sections[0].Body = strings.Join(parts, " ")
		}
	}

	return sections
}

// siblingText accumulates text from the nodes following a heading. A
// heading of equal or higher level ends the section; lower-level headings
// start their own sections, so their text is skipped here.
func siblingText(heading *html.Node) string {
	level := headingLevel(heading.Data)
	var parts []string

	for n := heading.NextSibling; n != nil; n = n.NextSibling {
		switch n.Type {
		case html.ElementNode:
			if l := headingLevel(n.Data); l > 0 {
				if l <= level {
					return strings.Join(parts, " ")
				}
				continue
			}
			if text := normalizeSpace(nodeText(n)); len(text) > minLengthFor(n.Data) {
				parts = append(parts, text)
			}
		case html.TextNode:
			if text := normalizeSpace(n.Data); len(text) > minFragmentLength {
				parts = append(parts, text)
			}
		}
	}

	return strings.Join(parts, " ")
}

// containerSections extracts standalone content blocks matched by the
// selector. Containers carrying chrome classes or too little text are
// skipped.
func containerSections(doc *goquery.Document, selector string) []scrapeall.Section {
	var sections []scrapeall.Section

	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if len(sel.Nodes) == 0 || isChrome(sel) {
			return
		}

		body := normalizeSpace(nodeText(sel.Nodes[0]))
		if len(body) <= minContainerLength {
			return
		}

		title := containerTitle(sel, body)
		if title == "" {
			return
		}

		sections = append(sections, scrapeall.Section{Title: title, Body: body})
	})

	return sections
}

// containerTitle derives a section title: an explicit data-title wins,
// then a nested heading, then any element classed as a title, then the
// leading words of the body.
func containerTitle(sel *goquery.Selection, body string) string {
	if title, ok := sel.Attr("data-title"); ok {
		if t := normalizeSpace(title); t != "" {
			return t
		}
	}

	if heading := sel.Find("h1, h2, h3, h4, h5, h6").First(); heading.Length() > 0 {
		if t := normalizeSpace(nodeText(heading.Nodes[0])); t != "" {
			return t
		}
	}

	if titled := sel.Find(`[class*="title"]`).First(); titled.Length() > 0 {
		if t := normalizeSpace(nodeText(titled.Nodes[0])); t != "" {
			return t
		}
	}

	return leadingWords(body, titleWordCount)
}

// isChrome reports whether the element's class list names structural
// page furniture.
func isChrome(sel *goquery.Selection) bool {
	class, _ := sel.Attr("class")
	lower := strings.ToLower(class)
	for _, chrome := range chromeClasses {
		if strings.Contains(lower, chrome) {
			return true
		}
	}
	return false
}

// minLengthFor returns the noise floor for an element's text by tag.
func minLengthFor(tag string) int {
	switch tag {
	case "div", "section", "article":
		return minContainerLength
	}
	return minFragmentLength
}

// headingLevel returns 1 through 6 for h1 through h6, 0 for any other tag.
func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// nodeText concatenates the text descendants of n, skipping script and
// style subtrees.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// leadingWords returns the first n words of s.
func leadingWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// normalizeSpace collapses whitespace runs to single spaces and trims.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

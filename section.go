package scrapeall

import "strings"

// Section is a titled block of page content, produced in document order.
// Route is assigned during classification; extraction leaves it empty.
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Route Route  `json:"route,omitempty"`
}

// NormalizeTitle returns the deduplication key for a section title:
// lowercased with surrounding whitespace removed.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// DedupSections drops sections with an empty title or empty body and
// collapses duplicate titles (by NormalizeTitle) to the first occurrence,
// preserving document order.
func DedupSections(sections []Section) []Section {
	if len(sections) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(sections))
	out := make([]Section, 0, len(sections))

	for _, s := range sections {
		key := NormalizeTitle(s.Title)
		if key == "" || strings.TrimSpace(s.Body) == "" {
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}

	return out
}

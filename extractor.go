package scrapeall

// SectionExtractor segments page HTML into titled content sections.
type SectionExtractor interface {
	// Extract runs the extraction strategies over the document and
	// returns deduplicated sections in document order. Documents with no
	// extractable content yield an empty slice, not an error.
	Extract(html string) ([]Section, error)
}

// CustomField is the value extracted by one custom selector: a scalar when
// the selector matched a single element, a list otherwise.
type CustomField struct {
	Values []string `json:"values"`
	Single bool     `json:"single"`
}

// Value returns the scalar string for single matches or the string slice
// for multiple matches, mirroring the shape serializers receive.
func (f CustomField) Value() any {
	if f.Single && len(f.Values) == 1 {
		return f.Values[0]
	}
	return f.Values
}

// CustomExtractor extracts named fields with caller-supplied CSS selectors.
// When selectors are configured it replaces the default SectionExtractor.
type CustomExtractor interface {
	// ExtractFields evaluates each selector against the document.
	// Selectors that match nothing produce no field.
	ExtractFields(html string, selectors map[string]string) (map[string]CustomField, error)
}

// LinkExtractor finds outbound links in page HTML.
type LinkExtractor interface {
	// ExtractLinks returns the canonical absolute URL of every anchor in
	// the document, deduplicated in document order. Links that cannot be
	// canonicalized are dropped.
	ExtractLinks(html string, baseURL string) ([]string, error)
}

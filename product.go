package scrapeall

import (
	"encoding/json"
	"io"
	"regexp"
	"strings"
)

// Product is one entry of a bulk scraping table. Slug overrides the
// derived URL slug for products whose page path does not follow the
// naming convention.
type Product struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// URLSlug returns the path segment for the product page, preferring an
// explicit Slug over one derived from the name.
func (p Product) URLSlug() string {
	if p.Slug != "" {
		return p.Slug
	}
	return SlugFromName(p.Name)
}

var (
	bracketRe   = regexp.MustCompile(`\s*\([^)]*\)`)
	nonWordRe   = regexp.MustCompile(`[^\w\-]`)
	hyphenRunRe = regexp.MustCompile(`-+`)
)

// SlugFromName derives a URL slug from a product name: lowercase, drop
// parenthesized qualifiers, replace remaining non-word characters with
// hyphens, and collapse hyphen runs.
func SlugFromName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = bracketRe.ReplaceAllString(s, "")
	s = nonWordRe.ReplaceAllString(s, "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// LoadProducts decodes a JSON product table. Every entry must carry a
// non-empty name.
func LoadProducts(r io.Reader) ([]Product, error) {
	var products []Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, Errorf(EINVALID, "decode product table: %v", err)
	}
	for i, p := range products {
		if strings.TrimSpace(p.Name) == "" {
			return nil, Errorf(EINVALID, "product %d has no name", i)
		}
	}
	return products, nil
}

// FieldRule maps section titles to a named output field. A section whose
// normalized title contains any of the keywords contributes its body to
// the field.
type FieldRule struct {
	Field    string   `json:"field"`
	Keywords []string `json:"keywords"`
}

// DefaultFieldRules returns the built-in section-to-field mapping used by
// bulk product scraping.
func DefaultFieldRules() []FieldRule {
	return []FieldRule{
		{Field: "molecular_info", Keywords: []string{"molecular"}},
		{Field: "benefits", Keywords: []string{"benefit"}},
		{Field: "mechanism_of_action", Keywords: []string{"mechanism"}},
		{Field: "research_indications", Keywords: []string{"indication", "effective"}},
		{Field: "quality_indicators", Keywords: []string{"quality"}},
		{Field: "protocols", Keywords: []string{"protocol", "dose", "reconstitute"}},
	}
}

// LoadFieldRules decodes a JSON field rule table. Every rule must carry a
// field name and at least one keyword.
func LoadFieldRules(r io.Reader) ([]FieldRule, error) {
	var rules []FieldRule
	if err := json.NewDecoder(r).Decode(&rules); err != nil {
		return nil, Errorf(EINVALID, "decode field rules: %v", err)
	}
	for i, rule := range rules {
		if strings.TrimSpace(rule.Field) == "" {
			return nil, Errorf(EINVALID, "field rule %d has no field name", i)
		}
		if len(rule.Keywords) == 0 {
			return nil, Errorf(EINVALID, "field rule %q has no keywords", rule.Field)
		}
	}
	return rules, nil
}

// ApplyFieldRules buckets section bodies into named fields by title
// keyword. Sections contribute in document order; a field matched by a
// single section is marked scalar.
func ApplyFieldRules(sections []Section, rules []FieldRule) map[string]CustomField {
	fields := make(map[string]CustomField)

	for _, rule := range rules {
		var values []string
		for _, sec := range sections {
			title := NormalizeTitle(sec.Title)
			for _, kw := range rule.Keywords {
				if strings.Contains(title, kw) {
					values = append(values, strings.TrimSpace(sec.Body))
					break
				}
			}
		}
		if len(values) > 0 {
			fields[rule.Field] = CustomField{Values: values, Single: len(values) == 1}
		}
	}

	return fields
}

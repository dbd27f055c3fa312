package scrapeall

import (
	"net/url"
	"strings"
)

// DiscoverySource identifies how a URL entered the frontier.
type DiscoverySource string

const (
	SourceLink    DiscoverySource = "link"
	SourceSitemap DiscoverySource = "sitemap"
)

// URLRecord is a discovered URL with its traversal depth.
// Records are immutable once created.
type URLRecord struct {
	URL    string
	Depth  int
	Source DiscoverySource
}

// Canonicalize resolves href against base and returns the canonical URL
// used as both the frontier dedup key and the fetch target. The fragment,
// query, and path parameters are stripped; non-HTTP(S) schemes are rejected
// with "". Two hrefs that canonicalize identically are the same page.
func Canonicalize(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	u := ref
	if base != nil {
		u = base.ResolveReference(ref)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}

	u.Fragment = ""
	u.RawFragment = ""
	u.RawQuery = ""
	u.ForceQuery = false
	stripPathParams(u)

	return u.String()
}

// Domain returns the host portion of rawURL, lowercased. Unparseable
// URLs yield "".
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// SameDomain reports whether two URLs share a host. Matching is exact:
// subdomains are distinct domains.
func SameDomain(a, b string) bool {
	da, db := Domain(a), Domain(b)
	return da != "" && da == db
}

// stripPathParams removes ";key=value" parameters from the final path
// segment, e.g. "/a/b;v=1" becomes "/a/b".
func stripPathParams(u *url.URL) {
	path := u.Path
	slash := strings.LastIndexByte(path, '/')
	if i := strings.IndexByte(path[slash+1:], ';'); i >= 0 {
		u.Path = path[:slash+1+i]
		u.RawPath = ""
	}
}

package classify

import (
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/manas95826/scrape-all"
)

// sameContent reports whether two section lists carry the same content:
// equal count, equal normalized-title sets, and equal body text. Order is
// ignored so cosmetic reshuffling between toggle states does not register
// as a content change. Bodies are compared by fingerprint rather than by
// holding sorted copies of the full text.
func sameContent(a, b []scrapeall.Section) bool {
	if len(a) != len(b) {
		return false
	}
	if !slices.Equal(titleKeys(a), titleKeys(b)) {
		return false
	}
	return slices.Equal(bodyFingerprints(a), bodyFingerprints(b))
}

func titleKeys(sections []scrapeall.Section) []string {
	keys := make([]string, len(sections))
	for i, s := range sections {
		keys[i] = scrapeall.NormalizeTitle(s.Title)
	}
	slices.Sort(keys)
	return keys
}

func bodyFingerprints(sections []scrapeall.Section) []uint64 {
	sums := make([]uint64, len(sections))
	for i, s := range sections {
		sums[i] = xxhash.Sum64String(s.Body)
	}
	slices.Sort(sums)
	return sums
}

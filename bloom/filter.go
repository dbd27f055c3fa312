// Package bloom provides URL deduplication for crawl frontiers using
// Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// fanout is the sizing headroom per budgeted page: a crawl that fetches n
// pages sees many more candidate links than it fetches.
const fanout = 64

// Filter wraps a Bloom filter for URL deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewURLSet creates a filter sized for a crawl with the given page budget,
// leaving headroom for links that are discovered but never fetched.
func NewURLSet(maxPages int) *Filter {
	if maxPages < 1 {
		maxPages = 1
	}
	return NewFilter(uint(maxPages)*fanout, 0.001)
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

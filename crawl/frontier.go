package crawl

import (
	"strings"
	"sync"

	"github.com/manas95826/scrape-all"
	"github.com/manas95826/scrape-all/bloom"
)

// Compile-time interface verification.
var _ scrapeall.Frontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO crawl queue with Bloom filter
// deduplication. FIFO order makes the traversal breadth-first: every
// record at depth d is popped before any record at depth d+1.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Filter
	queue []scrapeall.URLRecord
}

// NewFrontier creates a Frontier sized for a crawl budget of maxPages.
func NewFrontier(maxPages int) *Frontier {
	return &Frontier{
		seen: bloom.NewURLSet(maxPages),
	}
}

// Push adds a record to the queue.
// Returns false if the URL has already been seen. URL fragments are
// stripped before deduplication, so URLs differing only by fragment are
// considered duplicates.
func (f *Frontier) Push(rec scrapeall.URLRecord) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(rec.URL)
	if f.seen.Test(url) {
		return false
	}
	f.seen.Add(url)

	rec.URL = url
	f.queue = append(f.queue, rec)
	return true
}

// Pop returns the next record in FIFO order.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (scrapeall.URLRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return scrapeall.URLRecord{}, false
	}

	rec := f.queue[0]
	f.queue = f.queue[1:]
	return rec, true
}

// Len returns the number of records in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been queued or processed.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

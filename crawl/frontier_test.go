package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/manas95826/scrape-all"
	"github.com/manas95826/scrape-all/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFrontier_Push_rejects_duplicate_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000)

	rec := scrapeall.URLRecord{
		URL:    "https://example.com/peptides/page1",
		Source: scrapeall.SourceLink,
	}

	// First push should succeed
	ok := f.Push(rec)
	assert.True(t, ok, "first push should succeed")

	// Second push of same URL should be rejected
	ok = f.Push(rec)
	assert.False(t, ok, "duplicate URL should be rejected")
}

func TestFrontier_Push_deduplicates_by_fragment(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000)

	ok := f.Push(scrapeall.URLRecord{URL: "https://example.com/page", Source: scrapeall.SourceLink})
	assert.True(t, ok)

	// Same page with a fragment is the same URL
	ok = f.Push(scrapeall.URLRecord{URL: "https://example.com/page#dosing", Source: scrapeall.SourceLink})
	assert.False(t, ok, "fragment variant should be rejected as a duplicate")

	rec, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/page", rec.URL)

	_, ok = f.Pop()
	assert.False(t, ok, "fragment variant should not have been queued")
}

func TestFrontier_Pop_returns_records_in_FIFO_order(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000)

	f.Push(scrapeall.URLRecord{URL: "https://example.com", Depth: 0, Source: scrapeall.SourceLink})
	f.Push(scrapeall.URLRecord{URL: "https://example.com/a", Depth: 1, Source: scrapeall.SourceLink})
	f.Push(scrapeall.URLRecord{URL: "https://example.com/b", Depth: 1, Source: scrapeall.SourceLink})
	f.Push(scrapeall.URLRecord{URL: "https://example.com/a/c", Depth: 2, Source: scrapeall.SourceLink})

	// Pop should return in insertion order, keeping traversal breadth-first
	rec, ok := f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com", rec.URL)
	assert.Equal(t, 0, rec.Depth)

	rec, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/a", rec.URL)

	rec, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/b", rec.URL)

	rec, ok = f.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/a/c", rec.URL)
	assert.Equal(t, 2, rec.Depth)

	// Queue should now be empty
	_, ok = f.Pop()
	assert.False(t, ok, "pop on empty frontier should return false")
}

func TestFrontier_Len_tracks_queue_size(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000)

	assert.Equal(t, 0, f.Len(), "new frontier should be empty")

	f.Push(scrapeall.URLRecord{URL: "https://example.com/a", Source: scrapeall.SourceLink})
	assert.Equal(t, 1, f.Len())

	f.Push(scrapeall.URLRecord{URL: "https://example.com/b", Source: scrapeall.SourceLink})
	assert.Equal(t, 2, f.Len())

	f.Pop()
	assert.Equal(t, 1, f.Len())

	f.Pop()
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_Seen_tracks_all_pushed_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000)

	assert.False(t, f.Seen("https://example.com/page"), "unseen URL should return false")

	f.Push(scrapeall.URLRecord{URL: "https://example.com/page", Source: scrapeall.SourceLink})

	assert.True(t, f.Seen("https://example.com/page"), "pushed URL should be seen")
	assert.True(t, f.Seen("https://example.com/page#specs"), "fragment variant should be seen")

	// Pop the URL - it should still be seen
	f.Pop()
	assert.True(t, f.Seen("https://example.com/page"), "popped URL should still be seen")
}

func TestFrontier_concurrent_access(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(10000)

	const numGoroutines = 10
	const numOpsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2) // pushers + poppers

	// Start pushers
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				url := fmt.Sprintf("https://example.com/%d/%d", id, j)
				f.Push(scrapeall.URLRecord{URL: url, Source: scrapeall.SourceLink})
			}
		}(i)
	}

	// Start poppers
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				f.Pop()
				f.Len()
			}
		}()
	}

	wg.Wait()

	// Verify no panic occurred and state is consistent
	// All pushed URLs should be seen
	for i := 0; i < numGoroutines; i++ {
		for j := 0; j < numOpsPerGoroutine; j++ {
			url := fmt.Sprintf("https://example.com/%d/%d", i, j)
			assert.True(t, f.Seen(url), "pushed URL %s should be seen", url)
		}
	}
}

package scrapeall

import "context"

// Frontier manages the breadth-first crawl queue with deduplication.
type Frontier interface {
	// Push adds a record to the queue.
	// Returns false if the URL has already been seen.
	Push(rec URLRecord) bool

	// Pop returns the next record in FIFO order.
	// Returns false if the frontier is empty.
	Pop() (URLRecord, bool)

	// Len returns the number of records in the queue.
	Len() int

	// Seen returns true if the URL has been queued or processed.
	Seen(url string) bool
}

// DomainLimiter paces requests per domain. It is the crawl's sole
// concurrency-control mechanism: a fixed courtesy delay between fetches.
type DomainLimiter interface {
	// Wait blocks until the courtesy delay allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

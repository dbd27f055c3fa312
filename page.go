package scrapeall

import (
	"context"
	"time"
)

// Page is the extraction result for a single fetched page: the sole
// artifact handed to formatting and persistence collaborators.
// A Page is never mutated after construction.
type Page struct {
	// URL is the final URL after server-side redirects.
	URL string `json:"url"`

	// RetrievedAt records when the page body was fetched.
	RetrievedAt time.Time `json:"retrieved_at"`

	// Sections holds the extracted content in document order.
	Sections []Section `json:"sections"`

	// Routes partitions Sections by administration route. Nil unless
	// route classification ran; when set, every known route key is
	// present, possibly with an empty list.
	Routes map[Route][]Section `json:"routes,omitempty"`

	// Fields holds named values extracted by custom selectors or field
	// rules. Nil when neither was configured.
	Fields map[string]CustomField `json:"fields,omitempty"`
}

// FetchResult is a fetched response body plus the final URL after
// server-side redirects.
type FetchResult struct {
	Body     string
	FinalURL string
}

// Fetcher retrieves page bodies over HTTP.
// Any network error, timeout, or non-2xx status is reported as an error the
// caller is expected to skip and continue past, never to treat as fatal.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases client resources.
	Close() error
}

// ProgressFunc receives crawl progress: a fraction in [0, 1] and a
// human-readable status line. It is invoked synchronously on the crawling
// goroutine after each unit of work; callers must not block in it.
type ProgressFunc func(fraction float64, message string)

// PageSink consumes finished pages. It is the single handoff point to
// out-of-scope serialization and persistence collaborators.
type PageSink interface {
	Consume(ctx context.Context, page *Page) error
}

package scrapeall

import "context"

// ToggleHandle is an opaque reference to a located route toggle. It stays
// valid until the next Render call on the Renderer that produced it.
type ToggleHandle interface {
	// Describe reports which strategy matched and what it matched on,
	// for logging.
	Describe() string
}

// Renderer drives a headless browser for route-sensitive pages: it renders
// a URL, locates route-switching controls, and activates them.
// Implementations are interchangeable backends; classification logic never
// touches the automation engine directly.
type Renderer interface {
	// Render navigates to pageURL, waits for the document to settle, and
	// returns the rendered HTML.
	Render(ctx context.Context, pageURL string) (string, error)

	// LocateToggle searches the current page for a control that switches
	// to the given route, trying each location strategy in priority order
	// and returning the first match. Returns an ENOTFOUND error when no
	// strategy matches; that is an expected outcome, not a failure.
	LocateToggle(ctx context.Context, route Route) (ToggleHandle, error)

	// Activate interacts with a located toggle, waits a bounded settle
	// delay, and returns the post-toggle HTML.
	Activate(ctx context.Context, handle ToggleHandle) (string, error)

	// Close releases browser resources.
	Close() error
}

// RouteClassifier partitions extracted sections among administration routes.
type RouteClassifier interface {
	// Classify renders pageURL, drives its route toggles, and partitions
	// the content by route. Every known route key is present in the
	// result. Toggle and interaction failures degrade to heuristic
	// separation, never to an error; an error means rendering itself was
	// unavailable.
	Classify(ctx context.Context, pageURL string) (map[Route][]Section, error)

	// ClassifyStatic partitions an already-fetched document without
	// browser interaction: route-specific containers when the markup has
	// them, per-section keyword separation otherwise.
	ClassifyStatic(html string) map[Route][]Section
}

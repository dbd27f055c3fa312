// Package chromedp implements scrapeall.Renderer on the chromedp
// automation library. It is the alternative backend to package rod and
// exposes the same rendering and toggle semantics.
package chromedp

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/manas95826/scrape-all"
)

// DefaultRenderTimeout bounds a single Render call.
const DefaultRenderTimeout = 30 * time.Second

// DefaultSettleDelay is how long Activate waits after clicking a toggle
// before reading the DOM back.
const DefaultSettleDelay = 500 * time.Millisecond

// toggleMarker is the attribute stamped on elements located by text
// search so they can be addressed by CSS afterwards.
const toggleMarker = "data-toggle-probe"

// Ensure Renderer implements scrapeall.Renderer at compile time.
var _ scrapeall.Renderer = (*Renderer)(nil)

// Renderer drives a single headless Chrome tab. Each Render navigates the
// tab, so toggle handles stay valid until the next Render call.
type Renderer struct {
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	renderTimeout time.Duration
	settleDelay   time.Duration

	mu      sync.Mutex
	hasPage bool

	closed atomic.Bool
}

// Option configures a Renderer.
type Option func(*config)

type config struct {
	renderTimeout time.Duration
	settleDelay   time.Duration
	userAgent     string
}

// WithRenderTimeout sets the per-render timeout. Defaults to
// DefaultRenderTimeout; zero disables the bound.
func WithRenderTimeout(d time.Duration) Option {
	return func(c *config) {
		c.renderTimeout = d
	}
}

// WithSettleDelay sets the pause between activating a toggle and reading
// the resulting DOM. Defaults to DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(c *config) {
		c.settleDelay = d
	}
}

// WithUserAgent overrides the User-Agent the browser reports. Defaults to
// scrapeall.UserAgent.
func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.userAgent = ua
	}
}

// NewRenderer launches a headless Chrome browser. Close must be called
// when the Renderer is no longer needed.
func NewRenderer(opts ...Option) (*Renderer, error) {
	cfg := config{
		renderTimeout: DefaultRenderTimeout,
		settleDelay:   DefaultSettleDelay,
		userAgent:     scrapeall.UserAgent,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	execOpts := []chromedp.ExecAllocatorOption{
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(cfg.userAgent),
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), execOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Running an empty action list starts the browser, surfacing launch
	// failures here rather than on the first Render.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	return &Renderer{
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		renderTimeout: cfg.renderTimeout,
		settleDelay:   cfg.settleDelay,
	}, nil
}

// Render navigates the tab to pageURL, waits for the document to become
// ready, and returns the rendered HTML.
func (r *Renderer) Render(ctx context.Context, pageURL string) (string, error) {
	if r.closed.Load() {
		return "", scrapeall.Errorf(scrapeall.EINVALID, "renderer is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	runCtx, cancel := r.runContext(ctx)
	defer cancel()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(pageURL),
		waitForDocumentReady(),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		return "", scrapeall.Errorf(scrapeall.EUNAVAILABLE, "rendering %s: %v", pageURL, err)
	}

	r.mu.Lock()
	r.hasPage = true
	r.mu.Unlock()

	return html, nil
}

// LocateToggle searches the current document for a control that switches
// content to the given route. Strategies run in priority order and the
// first match wins. A miss on every strategy returns ENOTFOUND.
func (r *Renderer) LocateToggle(ctx context.Context, route scrapeall.Route) (scrapeall.ToggleHandle, error) {
	if r.closed.Load() {
		return nil, scrapeall.Errorf(scrapeall.EINVALID, "renderer is closed")
	}
	if !r.pageLoaded() {
		return nil, scrapeall.Errorf(scrapeall.EINVALID, "no page rendered")
	}

	runCtx, cancel := r.runContext(ctx)
	defer cancel()

	for _, strategy := range toggleStrategies(route) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		selector, found, err := strategy.locate(runCtx)
		if err != nil {
			return nil, err
		}
		if found {
			return &Toggle{selector: selector, strategy: strategy.name, route: route}, nil
		}
	}

	return nil, scrapeall.Errorf(scrapeall.ENOTFOUND, "no %s toggle on page", route)
}

// Activate clicks the located toggle, waits the settle delay, and returns
// the post-toggle HTML.
func (r *Renderer) Activate(ctx context.Context, handle scrapeall.ToggleHandle) (string, error) {
	if r.closed.Load() {
		return "", scrapeall.Errorf(scrapeall.EINVALID, "renderer is closed")
	}

	toggle, ok := handle.(*Toggle)
	if !ok || toggle.selector == "" {
		return "", scrapeall.Errorf(scrapeall.EINVALID, "toggle handle from a different renderer")
	}
	if !r.pageLoaded() {
		return "", scrapeall.Errorf(scrapeall.EINVALID, "no page rendered")
	}

	runCtx, cancel := r.runContext(ctx)
	defer cancel()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Click(toggle.selector, chromedp.ByQuery),
		chromedp.Sleep(r.settleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}

	return html, nil
}

// Close shuts down the browser. Close is safe to call multiple times.
func (r *Renderer) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	r.browserCancel()
	r.allocCancel()
	return nil
}

// runContext derives a run context from the browser context, bounded by
// the render timeout and cancelled alongside the caller's context.
// chromedp contexts carry browser state, so the caller's context cannot
// be the parent directly.
func (r *Renderer) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx := r.browserCtx
	var cancel context.CancelFunc
	if r.renderTimeout > 0 {
		runCtx, cancel = context.WithTimeout(runCtx, r.renderTimeout)
	} else {
		runCtx, cancel = context.WithCancel(runCtx)
	}

	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

func (r *Renderer) pageLoaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasPage
}

// waitForDocumentReady polls document.readyState until the page has
// finished loading.
func waitForDocumentReady() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			var readyState string
			if err := chromedp.Evaluate(`document.readyState`, &readyState).Do(ctx); err != nil {
				return err
			}
			if readyState == "complete" {
				return nil
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})
}

// Toggle is a located route control, addressed by a CSS selector valid
// until the next Render call.
type Toggle struct {
	selector string
	strategy string
	route    scrapeall.Route
}

// Describe reports the matched strategy for logging.
func (t *Toggle) Describe() string {
	return fmt.Sprintf("%s toggle via %s", t.route, t.strategy)
}

// toggleStrategy is one layer of the toggle search. locate reports the
// CSS selector addressing the matched element.
type toggleStrategy struct {
	name   string
	locate func(ctx context.Context) (selector string, found bool, err error)
}

// toggleStrategies returns the search layers for a route in fixed
// priority order: exact visible text, class or data attribute carrying
// the route token, ARIA tabs, then form controls.
func toggleStrategies(route scrapeall.Route) []toggleStrategy {
	token := string(route)

	markerSelector := fmt.Sprintf("[%s=%q]", toggleMarker, token)

	return []toggleStrategy{
		{
			name: "exact text",
			locate: func(ctx context.Context) (string, bool, error) {
				// Text matches get stamped with a marker attribute so the
				// handle can address them by CSS later.
				script := fmt.Sprintf(`(() => {
	const token = %q;
	for (const el of document.querySelectorAll('button, a, label, li, [role=button], [role=tab]')) {
		if (el.textContent.trim().toLowerCase() === token) {
			el.setAttribute(%q, token);
			return true;
		}
	}
	return false;
})()`, token, toggleMarker)

				var found bool
				if err := chromedp.Run(ctx, chromedp.Evaluate(script, &found)); err != nil {
					return "", false, err
				}
				return markerSelector, found, nil
			},
		},
		{
			name: "class or attribute",
			locate: selectorProbe(fmt.Sprintf(
				"button[class*=%[1]q], a[class*=%[1]q], label[class*=%[1]q], [data-route=%[1]q], [data-tab=%[1]q]",
				token,
			)),
		},
		{
			name: "tab role",
			locate: func(ctx context.Context) (string, bool, error) {
				script := fmt.Sprintf(`(() => {
	const token = %q;
	for (const el of document.querySelectorAll('[role="tab"]')) {
		if (el.textContent.toLowerCase().includes(token)) {
			el.setAttribute(%q, token);
			return true;
		}
	}
	return false;
})()`, token, toggleMarker)

				var found bool
				if err := chromedp.Run(ctx, chromedp.Evaluate(script, &found)); err != nil {
					return "", false, err
				}
				return markerSelector, found, nil
			},
		},
		{
			name: "form control",
			locate: selectorProbe(fmt.Sprintf(
				`input[type="radio"][value*=%[1]q], input[type="checkbox"][value*=%[1]q], input[type="radio"][id*=%[1]q], input[type="checkbox"][id*=%[1]q]`,
				token,
			)),
		},
	}
}

// selectorProbe checks for a CSS match without waiting; the selector
// itself becomes the handle.
func selectorProbe(selector string) func(ctx context.Context) (string, bool, error) {
	return func(ctx context.Context) (string, bool, error) {
		script := fmt.Sprintf(`document.querySelector(%q) !== null`, selector)

		var found bool
		if err := chromedp.Run(ctx, chromedp.Evaluate(script, &found)); err != nil {
			return "", false, err
		}
		return selector, found, nil
	}
}

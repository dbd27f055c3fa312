// Package rod implements scrapeall.Renderer with Chrome browser automation
// via go-rod. Pages are created through the stealth library so that bot
// detection on commerce sites does not block rendering.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/manas95826/scrape-all"
	"github.com/ysmood/gson"
)

// DefaultRenderTimeout bounds a single Render call, including navigation
// and load waiting.
const DefaultRenderTimeout = 30 * time.Second

// DefaultSettleDelay is how long Activate waits after clicking a toggle
// before reading the DOM back.
const DefaultSettleDelay = 500 * time.Millisecond

// Ensure Renderer implements scrapeall.Renderer at compile time.
var _ scrapeall.Renderer = (*Renderer)(nil)

// Renderer drives a headless Chrome instance. It holds the most recently
// rendered page so that toggle location and activation operate on the
// same document. Renderer is safe for concurrent use, though the
// classification pipeline drives it from a single goroutine.
type Renderer struct {
	manager       *BrowserManager
	renderTimeout time.Duration
	settleDelay   time.Duration
	userAgent     string
	recycleAfter  int64

	mu   sync.Mutex
	page *rod.Page

	closed atomic.Bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRenderTimeout sets the per-render timeout. Defaults to
// DefaultRenderTimeout; zero disables the bound.
func WithRenderTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.renderTimeout = d
	}
}

// WithSettleDelay sets the pause between activating a toggle and reading
// the resulting DOM. Defaults to DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(r *Renderer) {
		r.settleDelay = d
	}
}

// WithUserAgent overrides the User-Agent the browser reports. Defaults to
// scrapeall.UserAgent so rendered and plain HTTP fetches present
// identically.
func WithUserAgent(ua string) Option {
	return func(r *Renderer) {
		r.userAgent = ua
	}
}

// WithRecycleThreshold sets how many pages the underlying browser serves
// before being recycled.
func WithRecycleThreshold(n int64) Option {
	return func(r *Renderer) {
		r.recycleAfter = n
	}
}

// NewRenderer launches a managed headless Chrome browser. Close must be
// called when the Renderer is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		renderTimeout: DefaultRenderTimeout,
		settleDelay:   DefaultSettleDelay,
		userAgent:     scrapeall.UserAgent,
	}
	for _, opt := range opts {
		opt(r)
	}

	var managerOpts []ManagerOption
	if r.recycleAfter > 0 {
		managerOpts = append(managerOpts, WithRecycleAfter(r.recycleAfter))
	}

	manager, err := NewBrowserManager(managerOpts...)
	if err != nil {
		return nil, err
	}
	r.manager = manager

	return r, nil
}

// Render navigates to pageURL in a fresh stealth page, waits for the load
// event, and returns the rendered HTML. The page stays open and becomes
// the target of subsequent LocateToggle and Activate calls.
func (r *Renderer) Render(ctx context.Context, pageURL string) (string, error) {
	if r.closed.Load() {
		return "", scrapeall.Errorf(scrapeall.EINVALID, "renderer is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := stealth.Page(r.manager.Browser())
	if err != nil {
		return "", fmt.Errorf("creating page: %w", err)
	}

	work := page.Context(ctx)
	if r.renderTimeout > 0 {
		work = work.Timeout(r.renderTimeout)
	}

	if err := r.prepare(work); err != nil {
		_ = page.Close()
		return "", err
	}

	if err := work.Navigate(pageURL); err != nil {
		_ = page.Close()
		if ctx.Err() != nil {
			return "", err
		}
		return "", scrapeall.Errorf(scrapeall.EUNAVAILABLE, "navigating to %s: %v", pageURL, err)
	}

	if err := work.WaitLoad(); err != nil {
		_ = page.Close()
		return "", err
	}

	html, err := work.HTML()
	if err != nil {
		_ = page.Close()
		return "", err
	}

	r.mu.Lock()
	if r.page != nil {
		_ = r.page.Close()
	}
	r.page = page
	r.mu.Unlock()

	r.manager.PageProcessed()

	return html, nil
}

// prepare applies network overrides so the rendered session matches the
// plain HTTP fetcher's identity.
func (r *Renderer) prepare(page *rod.Page) error {
	if err := (proto.NetworkSetUserAgentOverride{UserAgent: r.userAgent}).Call(page); err != nil {
		return err
	}
	return proto.NetworkSetExtraHTTPHeaders{Headers: proto.NetworkHeaders{
		"Accept-Language": gson.New("en-US,en;q=0.9"),
	}}.Call(page)
}

// LocateToggle searches the current page for a control that switches
// content to the given route. Strategies run in priority order and the
// first match wins. A miss on every strategy returns ENOTFOUND.
func (r *Renderer) LocateToggle(ctx context.Context, route scrapeall.Route) (scrapeall.ToggleHandle, error) {
	if r.closed.Load() {
		return nil, scrapeall.Errorf(scrapeall.EINVALID, "renderer is closed")
	}

	r.mu.Lock()
	page := r.page
	r.mu.Unlock()
	if page == nil {
		return nil, scrapeall.Errorf(scrapeall.EINVALID, "no page rendered")
	}

	// NotFoundSleeper makes element lookups try once instead of retrying
	// until the context expires.
	probe := page.Context(ctx).Sleeper(rod.NotFoundSleeper)

	for _, strategy := range toggleStrategies(route) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		el, err := strategy.find(probe)
		if err != nil {
			continue
		}

		return &Toggle{el: el, strategy: strategy.name, route: route}, nil
	}

	return nil, scrapeall.Errorf(scrapeall.ENOTFOUND, "no %s toggle on page", route)
}

// Activate clicks the located toggle, waits the settle delay, and returns
// the post-toggle HTML of the current page.
func (r *Renderer) Activate(ctx context.Context, handle scrapeall.ToggleHandle) (string, error) {
	if r.closed.Load() {
		return "", scrapeall.Errorf(scrapeall.EINVALID, "renderer is closed")
	}

	toggle, ok := handle.(*Toggle)
	if !ok || toggle.el == nil {
		return "", scrapeall.Errorf(scrapeall.EINVALID, "toggle handle from a different renderer")
	}

	r.mu.Lock()
	page := r.page
	r.mu.Unlock()
	if page == nil {
		return "", scrapeall.Errorf(scrapeall.EINVALID, "no page rendered")
	}

	if err := toggle.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return "", err
	}

	if err := r.settle(ctx); err != nil {
		return "", err
	}

	return page.Context(ctx).HTML()
}

// settle waits the configured delay so client-side route switches can
// finish mutating the DOM.
func (r *Renderer) settle(ctx context.Context) error {
	if r.settleDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(r.settleDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Close releases the current page and the managed browser. Close is safe
// to call multiple times.
func (r *Renderer) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	r.mu.Lock()
	if r.page != nil {
		_ = r.page.Close()
		r.page = nil
	}
	r.mu.Unlock()

	return r.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (r *Renderer) LauncherPID() int {
	return r.manager.LauncherPID()
}

// Toggle is a located route control. It stays valid until the next Render
// call on the Renderer that produced it.
type Toggle struct {
	el       *rod.Element
	strategy string
	route    scrapeall.Route
}

// Describe reports the matched strategy for logging.
func (t *Toggle) Describe() string {
	return fmt.Sprintf("%s toggle via %s", t.route, t.strategy)
}

// toggleStrategy is one layer of the toggle search.
type toggleStrategy struct {
	name string
	find func(p *rod.Page) (*rod.Element, error)
}

// toggleStrategies returns the search layers for a route, in the fixed
// priority order: exact visible text, class or data attribute carrying
// the route token, ARIA tabs, then form controls.
func toggleStrategies(route scrapeall.Route) []toggleStrategy {
	token := string(route)

	return []toggleStrategy{
		{
			name: "exact text",
			find: func(p *rod.Page) (*rod.Element, error) {
				return p.ElementR(
					"button, a, label, li, [role=button], [role=tab]",
					fmt.Sprintf(`/^\s*%s\s*$/i`, token),
				)
			},
		},
		{
			name: "class or attribute",
			find: func(p *rod.Page) (*rod.Element, error) {
				return p.Element(fmt.Sprintf(
					"button[class*=%[1]q], a[class*=%[1]q], label[class*=%[1]q], [data-route=%[1]q], [data-tab=%[1]q]",
					token,
				))
			},
		},
		{
			name: "tab role",
			find: func(p *rod.Page) (*rod.Element, error) {
				return p.ElementR(`[role="tab"]`, fmt.Sprintf(`/%s/i`, token))
			},
		},
		{
			name: "form control",
			find: func(p *rod.Page) (*rod.Element, error) {
				return p.Element(fmt.Sprintf(
					`input[type="radio"][value*=%[1]q], input[type="checkbox"][value*=%[1]q], input[type="radio"][id*=%[1]q], input[type="checkbox"][id*=%[1]q]`,
					token,
				))
			},
		},
	}
}

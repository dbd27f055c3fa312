package mock

import (
	"context"

	"github.com/manas95826/scrape-all"
)

var _ scrapeall.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of scrapeall.Renderer.
type Renderer struct {
	RenderFn       func(ctx context.Context, pageURL string) (string, error)
	LocateToggleFn func(ctx context.Context, route scrapeall.Route) (scrapeall.ToggleHandle, error)
	ActivateFn     func(ctx context.Context, handle scrapeall.ToggleHandle) (string, error)
	CloseFn        func() error
}

func (r *Renderer) Render(ctx context.Context, pageURL string) (string, error) {
	return r.RenderFn(ctx, pageURL)
}

func (r *Renderer) LocateToggle(ctx context.Context, route scrapeall.Route) (scrapeall.ToggleHandle, error) {
	return r.LocateToggleFn(ctx, route)
}

func (r *Renderer) Activate(ctx context.Context, handle scrapeall.ToggleHandle) (string, error) {
	return r.ActivateFn(ctx, handle)
}

func (r *Renderer) Close() error {
	if r.CloseFn == nil {
		return nil
	}
	return r.CloseFn()
}

var _ scrapeall.ToggleHandle = (*ToggleHandle)(nil)

// ToggleHandle is a mock implementation of scrapeall.ToggleHandle.
type ToggleHandle struct {
	DescribeFn func() string
}

func (h *ToggleHandle) Describe() string {
	if h.DescribeFn == nil {
		return "mock toggle"
	}
	return h.DescribeFn()
}

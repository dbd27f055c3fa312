package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/manas95826/scrape-all"
)

// Ensure LoggingRenderer implements scrapeall.Renderer.
var _ scrapeall.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with debug logging.
type LoggingRenderer struct {
	next   scrapeall.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next scrapeall.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render logs the URL being rendered and delegates to the wrapped renderer.
func (r *LoggingRenderer) Render(ctx context.Context, pageURL string) (html string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("render",
			"url", pageURL,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, pageURL)
}

// LocateToggle logs the toggle search and delegates to the wrapped renderer.
func (r *LoggingRenderer) LocateToggle(ctx context.Context, route scrapeall.Route) (handle scrapeall.ToggleHandle, err error) {
	defer func(begin time.Time) {
		r.logger.Info("toggle search",
			"route", route,
			"match", describe(handle),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.LocateToggle(ctx, route)
}

// Activate logs the toggle activation and delegates to the wrapped renderer.
func (r *LoggingRenderer) Activate(ctx context.Context, handle scrapeall.ToggleHandle) (html string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("toggle activation",
			"toggle", describe(handle),
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Activate(ctx, handle)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}

func describe(handle scrapeall.ToggleHandle) string {
	if handle == nil {
		return ""
	}
	return handle.Describe()
}

package mock

import (
	"context"

	"github.com/manas95826/scrape-all"
)

var _ scrapeall.PageSink = (*PageSink)(nil)

// PageSink is a mock implementation of scrapeall.PageSink.
type PageSink struct {
	ConsumeFn func(ctx context.Context, page *scrapeall.Page) error
}

func (s *PageSink) Consume(ctx context.Context, page *scrapeall.Page) error {
	if s.ConsumeFn == nil {
		return nil
	}
	return s.ConsumeFn(ctx, page)
}

package main

import (
	"fmt"

	"github.com/manas95826/scrape-all"
	"github.com/manas95826/scrape-all/crawl"
)

// Run executes the probe command. It fetches the page once over plain
// HTTP and once through the browser and compares how much section text
// each yields.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	res, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapeall.ErrorMessage(err))
		return err
	}

	rendered, err := deps.Renderer.Render(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapeall.ErrorMessage(err))
		return err
	}

	if crawl.NeedsRendering(res.Body, rendered, deps.Sections) {
		fmt.Fprintf(deps.Stdout, "%s needs browser rendering\n", c.URL)
	} else {
		fmt.Fprintf(deps.Stdout, "%s serves its content statically\n", c.URL)
	}

	return nil
}

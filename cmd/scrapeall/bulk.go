package main

import (
	"fmt"
	"os"

	"github.com/manas95826/scrape-all"
)

// Run executes the bulk command.
func (c *BulkCmd) Run(deps *Dependencies) error {
	products, err := loadProducts(c.Products)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapeall.ErrorMessage(err))
		return err
	}

	if c.Rules != "" {
		rules, err := loadRules(c.Rules)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", scrapeall.ErrorMessage(err))
			return err
		}
		deps.Scraper.FieldRules = rules
	}

	progress := newProgressSpinner(deps.Stderr)
	result, err := deps.Scraper.Run(deps.Ctx, c.BaseURL, products, progress.update)
	progress.stop()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapeall.ErrorMessage(err))
		return err
	}

	printSummary(deps.Stdout, result.RunID, len(result.Pages), result.Failed, result.Sections, result.Characters, result.Duration)
	return nil
}

func loadProducts(path string) ([]scrapeall.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, scrapeall.Errorf(scrapeall.EINVALID, "open product table: %v", err)
	}
	defer f.Close()
	return scrapeall.LoadProducts(f)
}

func loadRules(path string) ([]scrapeall.FieldRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, scrapeall.Errorf(scrapeall.EINVALID, "open field rules: %v", err)
	}
	defer f.Close()
	return scrapeall.LoadFieldRules(f)
}

// Package scrapeall provides the crawling and extraction core of a
// website-to-structured-content scraper. It discovers the pages of a target
// site (sitemap-first, with a breadth-first link-crawl fallback), segments
// each page's HTML into titled content sections, and, for route-sensitive
// pages, partitions those sections among administration routes by driving
// client-side toggles through a headless browser.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, rod/).
package scrapeall

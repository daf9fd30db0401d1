// Package scraper retrieves the life-expectancy table from the source web
// page.
//
// base.go holds the Fetcher, which performs the single HTTP GET against the
// configured URL, and the PageScraper that chains Fetch and Parse.
//
// table.go holds the Parser, which walks the HTML with golang.org/x/net/html,
// selects the Nth element carrying the configured class, and converts its
// body rows into a types.Table. The parser never adds the Common entry.
//
// Failures are reported with the sentinel errors ErrNetwork,
// ErrTableNotFound, ErrRowShape and ErrNumericParse so the caller can decide
// which ones to swallow.
package scraper

// Package scraper fetches mlb.com pages and extracts roster links and player
// bio fields from them.
//
// Fetch returns a parsed goquery document or a *FetchError. ParseRoster and
// ParseProfile work on any document, so they can be tested against saved
// fixture pages.
package scraper

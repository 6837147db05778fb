package model

import "time"

// CrawlReport summarizes one finished (or cancelled) crawl of a single seed.
// It carries only aggregate numbers; the wordlist itself is held by the
// shared word set and written separately.
type CrawlReport struct {
	// Seed is the URL the crawl started from.
	Seed string

	// StartedAt is when the crawl began.
	StartedAt time.Time

	// Duration is the total wall-clock time of the crawl.
	Duration time.Duration

	// PagesFetched counts pages that returned usable HTML.
	PagesFetched int

	// PagesFailed counts attempted fetches that yielded no content
	// (non-200 status, wrong content type, or transport failure).
	PagesFailed int

	// Words is the size of the shared word set when this crawl finished.
	// With a single seed that is exactly the wordlist size; with
	// concurrent seeds it includes words other crawls added first.
	Words int

	// Cancelled reports whether the crawl was interrupted before draining
	// all scheduled pages.
	Cancelled bool
}

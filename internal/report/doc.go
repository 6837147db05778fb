// Package report writes crawl summary reports.
//
// The wordlist itself is written by the wordlist package; reports are the
// optional companion artifact (--report) describing what the crawl did:
// seeds, pages fetched and failed, durations, and the final word count.
package report

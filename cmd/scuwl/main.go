// Package main provides the entry point for the scuwl CLI.
//
// scuwl is a custom wordlist generator for security testing. It crawls a
// site from a seed URL, staying on the seed's origin and respecting
// robots.txt, and emits a sorted, deduplicated list of the words found in
// the visible page text.
//
// Usage:
//
//	scuwl crawl https://example.com
//	scuwl crawl -d 2 -o wordlist.txt https://example.com
//
// See --help for all available options.
package main

// main is the entry point for scuwl.
func main() {
	Execute()
}

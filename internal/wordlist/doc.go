// Package wordlist turns parsed page content into a deduplicated set of
// filtered words and writes the final sorted list.
//
// The extraction pipeline is: select text (visible text nodes or table text),
// lower-case it, optionally strip ASCII punctuation, split on whitespace,
// then keep words that pass the length and character-class filters. Every
// surviving word lands in one Set shared by all concurrent crawl tasks.
package wordlist

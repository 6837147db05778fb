// Package model defines the shared value types passed between the crawler,
// the wordlist extractor, and the report writers.
package model

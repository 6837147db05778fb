package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances in Validate(). This allows callers to use errors.Is()
// for programmatic error handling while still providing human-readable
// messages.
var (
	// ErrNoSeed is returned when no seed URL is given on the command line.
	ErrNoSeed = errors.New("no seed URL specified")

	// ErrInvalidSeed is returned when a seed URL is not an absolute
	// http(s) URL. The crawl origin (scheme + host) is derived from the
	// seed, so a relative or schemeless seed cannot be crawled.
	ErrInvalidSeed = errors.New("invalid seed URL: must be absolute http(s)")

	// ErrInvalidDepth is returned when the crawl depth is negative.
	// Depth 0 is valid and means "seed page only".
	ErrInvalidDepth = errors.New("invalid depth: must be non-negative")

	// ErrInvalidLengthRange is returned when the word length bounds are
	// not positive or the minimum exceeds the maximum.
	ErrInvalidLengthRange = errors.New("invalid length range: need 1 <= min <= max")

	// ErrInvalidTimeout is returned when the per-request timeout is not
	// positive. A zero timeout would cause immediate fetch failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the fetch concurrency cap is
	// not positive. A cap of zero would deadlock every fetch.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidBatchSize is returned when the seed batch size is not
	// positive. Zero concurrent seeds would mean no crawling at all.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is
	// negative. Use 0 for the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidProxy is returned when the proxy address cannot be parsed
	// as a URL with a scheme and host.
	ErrInvalidProxy = errors.New("invalid proxy address")
)

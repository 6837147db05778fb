package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. Word-filter defaults match the original
// scuwl behavior; the rest are chosen for polite crawling of a single site.
const (
	// DefaultDepth of 0 means only the seed page is fetched.
	// Each additional level follows links one hop further from the seed.
	DefaultDepth = 0

	// DefaultMinLength drops very short tokens ("a", "of", "to") that are
	// rarely useful in a wordlist.
	DefaultMinLength = 3

	// DefaultMaxLength drops very long tokens, which tend to be
	// concatenated junk (base64 blobs, minified identifiers) rather than
	// words anyone would type.
	DefaultMaxLength = 20

	// DefaultTimeout is the per-request timeout. Twenty seconds is generous
	// for a single page while still letting a crawl of a slow site finish.
	DefaultTimeout = 20 * time.Second

	// DefaultConcurrency is the global cap on in-flight fetches. The crawl
	// spawns one task per discovered link, so this pool is the only thing
	// standing between a link-dense site and an accidental flood.
	DefaultConcurrency = 60

	// DefaultBatchSize is the number of seeds crawled concurrently when
	// multiple seed URLs are given.
	DefaultBatchSize = 4

	// DefaultMaxBodySize limits the response body size read per page.
	// 5MB is sufficient for any HTML page while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "scuwl"
)

// Config holds all configuration options for a crawl.
// It is populated once from CLI flags (and the optional config file) and
// passed through the application by value of reference; nothing mutates it
// after Validate.
//
// Design decision: A single flat struct instead of nested sub-configs.
// The option count is manageable, and nesting would add complexity without
// significant benefit.
type Config struct {
	// Seeds are the URLs to start crawling from. Each seed is crawled
	// independently (own origin, own visited set) but all contribute to
	// one merged wordlist.
	Seeds []string

	// Depth is the maximum recursion depth. 0 means only the seed page,
	// 1 means the seed plus directly linked pages, and so on.
	Depth int

	// MinLength and MaxLength bound the length of kept words, inclusive.
	MinLength int
	MaxLength int

	// StripPunctuation removes ASCII punctuation from page text before
	// splitting it into words. Enabled by default; the -p flag retains
	// punctuation instead.
	StripPunctuation bool

	// AlphaOnly keeps only words composed entirely of letters.
	// When false, words composed of any ASCII characters are kept.
	AlphaOnly bool

	// TablesOnly extracts words from <table> elements only, ignoring the
	// rest of the page text.
	TablesOnly bool

	// UserAgent is the User-Agent header sent with every request,
	// including the robots.txt fetch.
	UserAgent string

	// Headers are extra HTTP headers sent with every request, typically a
	// session cookie or an Authorization header for authenticated crawls.
	Headers map[string]string

	// Proxy is an optional proxy address. "http://host:port" style
	// addresses are used as an HTTP proxy; "socks5://host:port" addresses
	// route requests through a SOCKS5 proxy (Burp, Tor, ssh -D).
	Proxy string

	// Timeout is the per-request timeout. There is no whole-crawl timeout;
	// a crawl ends when the reachable same-origin graph is exhausted.
	Timeout time.Duration

	// Concurrency is the global cap on simultaneously in-flight fetches,
	// shared by every task the crawl spawns.
	Concurrency int64

	// BatchSize is the number of seeds crawled concurrently.
	BatchSize int

	// OutFile is the wordlist destination. Empty means stdout.
	OutFile string

	// ReportFile, when set, is where a Markdown crawl summary is written.
	ReportFile string

	// DBDir is the directory of the SQLite wordlist store. Words are only
	// persisted when SaveToDB is set; the store accumulates wordlists
	// across runs for later export.
	DBDir string

	// SaveToDB persists this crawl's words to the wordlist store.
	SaveToDB bool

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// Verbose enables debug-level log output.
	Verbose bool

	// ConfigFilePath is the path of the config file. Empty means search
	// the current directory and then the home directory for .scuwl.
	ConfigFilePath string

	// SiteConfigs holds per-host overrides loaded from the config file.
	SiteConfigs *File
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on zero
// values because most defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Depth:            DefaultDepth,
		MinLength:        DefaultMinLength,
		MaxLength:        DefaultMaxLength,
		StripPunctuation: true,
		Timeout:          DefaultTimeout,
		Concurrency:      DefaultConcurrency,
		BatchSize:        DefaultBatchSize,
		MaxBodySize:      DefaultMaxBodySize,
		DBDir:            XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for scuwl, the default home of
// the wordlist store.
// On Linux: ~/.local/share/scuwl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// ParseHeaders parses the -H flag value, a JSON object mapping header names
// to values, e.g. '{"Cookie":"session=abc123"}'.
func ParseHeaders(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, nil
	}
	headers := make(map[string]string)
	if err := json.Unmarshal([]byte(raw), &headers); err != nil {
		return nil, fmt.Errorf("invalid headers JSON: %w", err)
	}
	return headers, nil
}

// Validate checks if the configuration is valid.
// It is called once after CLI parsing, before any crawling begins; any
// error returned here is fatal to the run.
//
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 {
		return ErrNoSeed
	}

	// Seeds must be absolute http(s) URLs; everything downstream derives
	// the crawl origin from them.
	for _, seed := range c.Seeds {
		u, err := url.Parse(seed)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidSeed, seed, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidSeed, seed)
		}
	}

	if c.Depth < 0 {
		return ErrInvalidDepth
	}

	if c.MinLength < 1 || c.MaxLength < 1 || c.MinLength > c.MaxLength {
		return ErrInvalidLengthRange
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.Proxy != "" {
		u, err := url.Parse(c.Proxy)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidProxy, c.Proxy)
		}
	}

	return nil
}

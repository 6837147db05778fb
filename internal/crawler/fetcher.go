package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/net/proxy"
	"golang.org/x/sync/semaphore"
)

// DefaultMaxBodySize limits response bodies when no cap is configured.
const DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

// NewClient builds the HTTP client shared by page and robots.txt fetches.
//
// proxyAddr may be empty (direct), an http(s) proxy URL, or a
// socks5://host:port address. SOCKS5 covers the interception and pivoting
// proxies common in security work (Burp, Tor, ssh -D).
func NewClient(proxyAddr string, timeout time.Duration) (*http.Client, error) {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
	}

	if proxyAddr != "" {
		u, err := url.Parse(proxyAddr)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy address: %w", err)
		}

		switch u.Scheme {
		case "socks5", "socks5h":
			dialer, err := proxy.SOCKS5("tcp", u.Host, socksAuth(u), proxy.Direct)
			if err != nil {
				return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
			}
			contextDialer, ok := dialer.(proxy.ContextDialer)
			if !ok {
				return nil, errors.New("SOCKS5 dialer does not support context")
			}
			transport.DialContext = contextDialer.DialContext
		default:
			transport.Proxy = http.ProxyURL(u)
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}

// socksAuth extracts optional user:password credentials from a proxy URL.
func socksAuth(u *url.URL) *proxy.Auth {
	if u.User == nil {
		return nil
	}
	password, _ := u.User.Password()
	return &proxy.Auth{
		User:     u.User.Username(),
		Password: password,
	}
}

// Fetcher retrieves page text under a global concurrency cap. The permit
// pool is the crawl's single backpressure mechanism: any number of tasks may
// wait on it, but at most its weight are ever in flight.
//
// Fetch never returns an error. Every failure mode (non-200 status, wrong
// content type, transport error, decode error, timeout, cancellation)
// yields empty text, which the caller treats as a leaf: no words, no links,
// no retry.
type Fetcher struct {
	// client is the shared HTTP client, proxy and timeout included.
	client *http.Client

	// sem is the global fetch permit pool.
	sem *semaphore.Weighted

	// userAgent is sent with every request.
	userAgent string

	// headers are extra headers sent with every request.
	headers map[string]string

	// maxBodySize caps how much of a response body is read.
	maxBodySize int64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithHeaders sets extra headers sent with every request.
func WithHeaders(headers map[string]string) FetcherOption {
	return func(f *Fetcher) {
		f.headers = headers
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// NewFetcher creates a Fetcher drawing permits from sem. The pool is passed
// in rather than created here so that every spider in a multi-seed run can
// share one global cap.
func NewFetcher(client *http.Client, sem *semaphore.Weighted, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      client,
		sem:         sem,
		userAgent:   "scuwl",
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch retrieves the page at rawURL and returns its decoded text, or ""
// when the page yields nothing usable. Acquiring a permit and the request
// itself are the suspension points where cancellation is observed.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) string {
	if err := f.sem.Acquire(ctx, 1); err != nil {
		// Context cancelled while waiting for a permit.
		return ""
	}
	defer f.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return ""
	}

	req.Header.Set("User-Agent", f.userAgent)
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		slog.Debug("fetch failed", "url", rawURL, "error", err)
		return ""
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		slog.Debug("fetch skipped", "url", rawURL, "status", resp.StatusCode)
		return ""
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "text/html") {
		slog.Debug("fetch skipped", "url", rawURL, "content_type", contentType)
		return ""
	}

	// Decode to UTF-8 using the declared charset before parsing.
	body := io.LimitReader(resp.Body, f.maxBodySize)
	reader, err := charset.NewReader(body, contentType)
	if err != nil {
		return ""
	}

	text, err := io.ReadAll(reader)
	if err != nil {
		slog.Debug("fetch read failed", "url", rawURL, "error", err)
		return ""
	}

	return string(text)
}

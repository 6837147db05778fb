package crawler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/temoto/robotstxt"
)

// Gate answers whether the crawl's user agent may fetch a URL, based on the
// origin's robots.txt. It is built once per crawl and never mutated, so
// concurrent traversal tasks can query it without locking.
type Gate struct {
	// data is the parsed ruleset. nil means no usable robots.txt was
	// found and everything is allowed.
	data *robotstxt.RobotsData

	// userAgent is the agent string rules are matched against.
	userAgent string
}

// NewGate fetches and parses <origin>/robots.txt over the same client used
// for page fetches. Failure is never fatal: an unreachable, non-200, or
// unparseable robots.txt yields a gate that allows everything. The absence
// of a ruleset must not block a crawl that has no other guidance.
func NewGate(ctx context.Context, client *http.Client, origin *url.URL, userAgent string) *Gate {
	gate := &Gate{userAgent: userAgent}

	robotsURL := origin.Scheme + "://" + origin.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return gate
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		slog.Debug("robots.txt unavailable, crawling unrestricted", "url", robotsURL, "error", err)
		return gate
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		slog.Debug("robots.txt not served, crawling unrestricted", "url", robotsURL, "status", resp.StatusCode)
		return gate
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gate
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		slog.Debug("robots.txt unparseable, crawling unrestricted", "url", robotsURL, "error", err)
		return gate
	}

	gate.data = data
	return gate
}

// Allowed reports whether the gate's user agent may fetch rawURL.
func (g *Gate) Allowed(rawURL string) bool {
	if g.data == nil {
		return true
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}

	return g.data.TestAgent(u.Path, g.userAgent)
}

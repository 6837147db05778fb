package crawler

import (
	"net/url"
	"path"
	"strings"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/petebuffon/scuwl/internal/model"
)

// assetExtensions lists link extensions that never lead to word-bearing
// pages. Anything here is skipped before a request is even considered.
var assetExtensions = map[string]struct{}{
	".svg":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
	".ico":  {},
	".bmp":  {},
}

// Normalizer resolves raw anchor hrefs into absolute crawl targets scoped to
// the seed origin. It is stateless and safe for concurrent use.
type Normalizer struct {
	// origin is the seed's scheme and host; links are only eligible when
	// they stay on this origin or are relative to a page already on it.
	origin *url.URL
}

// NewNormalizer creates a Normalizer for the given seed origin.
func NewNormalizer(origin *url.URL) *Normalizer {
	return &Normalizer{origin: origin}
}

// Normalize turns one anchor into an absolute URL, or reports it skipped.
// page is the resolved URL of the page the anchor appeared on.
//
// Rules, in order: asset extensions are skipped; fragment-only links are
// skipped; hrefs carrying the origin host are resolved as same-origin
// (prefixing the seed scheme for protocol-relative "//host/path" forms);
// any other absolute URL is off-origin and skipped; remaining relative
// links resolve against the current page. Anchors with no visible text are
// skipped last.
func (n *Normalizer) Normalize(anchor model.Anchor, page *url.URL) (string, bool) {
	href := anchor.Href

	if isAssetLink(href) {
		return "", false
	}

	if strings.HasPrefix(href, "#") {
		return "", false
	}

	var resolved *url.URL
	switch {
	case strings.Contains(href, n.origin.Host):
		if strings.HasPrefix(href, "//") {
			href = n.origin.Scheme + ":" + href
		}
		u, err := url.Parse(href)
		if err != nil {
			return "", false
		}
		resolved = page.ResolveReference(u)
	default:
		u, err := url.Parse(href)
		if err != nil {
			return "", false
		}
		if u.IsAbs() || u.Host != "" {
			// Off-origin absolute link; never followed.
			return "", false
		}
		if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
			// javascript:, mailto:, tel:, data:
			return "", false
		}
		resolved = page.ResolveReference(u)
	}

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}

	if anchor.Text == "" {
		return "", false
	}

	return resolved.String(), true
}

// isAssetLink reports whether the href, ignoring query and fragment, ends
// in a known non-text asset extension.
func isAssetLink(href string) bool {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	ext := strings.ToLower(path.Ext(href))
	_, skip := assetExtensions[ext]
	return skip
}

// visitedSet tracks which URLs have already been scheduled, keyed by a
// blake2b-256 fingerprint of the absolute URL string rather than the string
// itself, keeping the set's footprint fixed per entry on long crawls.
type visitedSet struct {
	mu   sync.Mutex
	seen map[[blake2b.Size256]byte]struct{}
}

func newVisitedSet() *visitedSet {
	return &visitedSet{seen: make(map[[blake2b.Size256]byte]struct{})}
}

// markIfNew records the URL and reports whether it was previously unseen.
// The check and the insert happen under one lock so two tasks racing on the
// same URL cannot both schedule it.
func (v *visitedSet) markIfNew(rawURL string) bool {
	sum := blake2b.Sum256([]byte(rawURL))

	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.seen[sum]; ok {
		return false
	}
	v.seen[sum] = struct{}{}
	return true
}

// size returns the number of distinct URLs recorded.
func (v *visitedSet) size() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.seen)
}

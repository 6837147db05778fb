package crawler

import (
	"net/url"
	"testing"

	"github.com/petebuffon/scuwl/internal/model"
)

// TestNormalizer tests href resolution and the link skip rules.
func TestNormalizer(t *testing.T) {
	t.Parallel()

	origin, _ := url.Parse("https://example.com")
	page, _ := url.Parse("https://example.com/docs/index.html")
	n := NewNormalizer(origin)

	tests := []struct {
		name   string
		anchor model.Anchor
		want   string
		ok     bool
	}{
		{
			name:   "relative link resolves against page",
			anchor: model.Anchor{Href: "guide.html", Text: "Guide"},
			want:   "https://example.com/docs/guide.html",
			ok:     true,
		},
		{
			name:   "root-relative link",
			anchor: model.Anchor{Href: "/login", Text: "Login"},
			want:   "https://example.com/login",
			ok:     true,
		},
		{
			name:   "absolute same-origin link",
			anchor: model.Anchor{Href: "https://example.com/admin", Text: "Admin"},
			want:   "https://example.com/admin",
			ok:     true,
		},
		{
			name:   "protocol-relative same-origin link gets seed scheme",
			anchor: model.Anchor{Href: "//example.com/assets/page", Text: "Assets"},
			want:   "https://example.com/assets/page",
			ok:     true,
		},
		{
			name:   "off-origin absolute link skipped",
			anchor: model.Anchor{Href: "https://other.test/page", Text: "Other"},
			ok:     false,
		},
		{
			name:   "image extension skipped",
			anchor: model.Anchor{Href: "/logo.png", Text: "Logo"},
			ok:     false,
		},
		{
			name:   "image extension with query skipped",
			anchor: model.Anchor{Href: "/photo.jpg?size=large", Text: "Photo"},
			ok:     false,
		},
		{
			name:   "fragment-only link skipped",
			anchor: model.Anchor{Href: "#section-2", Text: "Section 2"},
			ok:     false,
		},
		{
			name:   "path with fragment allowed",
			anchor: model.Anchor{Href: "/page#section", Text: "Page"},
			want:   "https://example.com/page#section",
			ok:     true,
		},
		{
			name:   "empty anchor text skipped",
			anchor: model.Anchor{Href: "/hidden", Text: ""},
			ok:     false,
		},
		{
			name:   "mailto skipped",
			anchor: model.Anchor{Href: "mailto:admin@other.test", Text: "Mail"},
			ok:     false,
		},
		{
			name:   "javascript skipped",
			anchor: model.Anchor{Href: "javascript:void(0)", Text: "Click"},
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := n.Normalize(tt.anchor, page)
			if ok != tt.ok {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.anchor.Href, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.anchor.Href, got, tt.want)
			}
		})
	}
}

// TestVisitedSet tests the atomic check-and-insert.
func TestVisitedSet(t *testing.T) {
	t.Parallel()

	t.Run("first mark allows, second skips", func(t *testing.T) {
		t.Parallel()

		v := newVisitedSet()
		if !v.markIfNew("https://example.com/a") {
			t.Error("expected first mark to report new")
		}
		if v.markIfNew("https://example.com/a") {
			t.Error("expected second mark to report seen")
		}
		if v.size() != 1 {
			t.Errorf("expected size 1, got %d", v.size())
		}
	})

	t.Run("distinct urls do not collide", func(t *testing.T) {
		t.Parallel()

		v := newVisitedSet()
		v.markIfNew("https://example.com/a")
		if !v.markIfNew("https://example.com/b") {
			t.Error("expected distinct URL to be new")
		}
		if v.size() != 2 {
			t.Errorf("expected size 2, got %d", v.size())
		}
	})
}

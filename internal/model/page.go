package model

// Page holds the parsed content of a single fetched page.
//
// Design decision: The parser flattens the HTML tree into these three lists
// rather than exposing DOM nodes because the consumers only ever need text
// with its enclosing tag (word extraction), anchors (link discovery), and
// table text (table-only extraction). A fixed shape keeps the extractor
// independent of the HTML library.
type Page struct {
	// URL is the resolved absolute URL the page was fetched from.
	URL string

	// Depth is the recursion depth at which the page was fetched.
	// The seed page is depth 0.
	Depth int

	// TextNodes are all text nodes in document order, each paired with the
	// name of its nearest enclosing element.
	TextNodes []TextNode

	// Anchors are all <a> elements carrying an href attribute.
	Anchors []Anchor

	// Tables holds the full visible text of each <table> element.
	Tables []string
}

// TextNode is one HTML text node and the element that contains it.
type TextNode struct {
	// Text is the raw text content, whitespace included.
	Text string

	// Parent is the lower-cased tag name of the enclosing element,
	// e.g. "p", "script", "td".
	Parent string
}

// Anchor is one <a href=...> element.
type Anchor struct {
	// Href is the raw href attribute value, not yet resolved.
	Href string

	// Text is the anchor's visible text with surrounding whitespace trimmed.
	Text string
}

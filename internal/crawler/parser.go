package crawler

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/petebuffon/scuwl/internal/model"
)

// Parse parses HTML content into the flat shape the extractor and the link
// discovery consume: text nodes with their enclosing tag, anchors with their
// visible text, and per-table text.
//
// Design decision: We use golang.org/x/net/html rather than regex because:
//  1. It correctly handles malformed HTML common on the web
//  2. Provides a proper DOM-like structure
//  3. Standard library extension, well-maintained
func Parse(content io.Reader) (*model.Page, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	page := &model.Page{
		TextNodes: make([]model.TextNode, 0),
		Anchors:   make([]model.Anchor, 0),
		Tables:    make([]string, 0),
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			// Text hanging directly off the document node has no
			// rendering context; comments are skipped entirely by
			// never matching this case.
			if n.Parent != nil && n.Parent.Type == html.ElementNode {
				page.TextNodes = append(page.TextNodes, model.TextNode{
					Text:   n.Data,
					Parent: n.Parent.Data,
				})
			}
		case html.ElementNode:
			switch n.Data {
			case "a":
				if href := getAttr(n, "href"); href != "" {
					page.Anchors = append(page.Anchors, model.Anchor{
						Href: strings.TrimSpace(href),
						Text: strings.TrimSpace(textContent(n)),
					})
				}
			case "table":
				page.Tables = append(page.Tables, textContent(n))
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	return page, nil
}

// textContent returns the concatenated text of all text nodes under n,
// with a space between adjacent nodes.
func textContent(n *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if b.Len() > 0 {
				b.WriteString(" ")
			}
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return b.String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// Package htmldoc implements the BadgeDocument port over a parsed HTML page,
// so the status poller can run outside a browser.
package htmldoc

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/ericfisherdev/codereviewer/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.BadgeDocument = (*Document)(nil)
	_ driven.StatusBadge   = (*Badge)(nil)
)

// ReviewIDAttr marks an element as a review status badge.
const ReviewIDAttr = "data-review-id"

// Document is a parsed HTML page. All reads and writes of the node tree go
// through one lock, so badges may be patched while the page is rendered.
type Document struct {
	mu   sync.RWMutex
	root *html.Node
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// Badges returns every element with a data-review-id attribute, in document order.
func (d *Document) Badges() []driven.StatusBadge {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var badges []driven.StatusBadge
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, ok := attr(n, ReviewIDAttr); ok {
				badges = append(badges, &Badge{doc: d, node: n})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return badges
}

// Render writes the current state of the document to w.
func (d *Document) Render(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// Badge is one status element within a Document.
type Badge struct {
	doc  *Document
	node *html.Node
}

// ReviewID returns the badge's data-review-id value.
func (b *Badge) ReviewID() string {
	b.doc.mu.RLock()
	defer b.doc.mu.RUnlock()

	v, _ := attr(b.node, ReviewIDAttr)
	return v
}

// Text returns the concatenated text content of the badge.
func (b *Badge) Text() string {
	b.doc.mu.RLock()
	defer b.doc.mu.RUnlock()

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(b.node)
	return sb.String()
}

// Attr returns the value of the named attribute.
func (b *Badge) Attr(name string) (string, bool) {
	b.doc.mu.RLock()
	defer b.doc.mu.RUnlock()

	return attr(b.node, name)
}

// SetText replaces all children of the badge with a single text node.
func (b *Badge) SetText(text string) {
	b.doc.mu.Lock()
	defer b.doc.mu.Unlock()

	for c := b.node.FirstChild; c != nil; {
		next := c.NextSibling
		b.node.RemoveChild(c)
		c = next
	}
	b.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// SetAttribute sets or adds the named attribute.
func (b *Badge) SetAttribute(name, value string) {
	b.doc.mu.Lock()
	defer b.doc.mu.Unlock()

	for i := range b.node.Attr {
		if b.node.Attr[i].Namespace == "" && b.node.Attr[i].Key == name {
			b.node.Attr[i].Val = value
			return
		}
	}
	b.node.Attr = append(b.node.Attr, html.Attribute{Key: name, Val: value})
}

// SetClass replaces the class attribute.
func (b *Badge) SetClass(class string) {
	b.SetAttribute("class", class)
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Package dom wraps a parsed HTML tree into a minimal live document: element
// lookup, attribute mutation, style injection and event listeners with
// bubbling dispatch. It is the surface grab mode is installed on.
package dom

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrDetached is returned when operation requires node to be part of the document.
	ErrDetached = errors.New("node is not attached to the document")
	// ErrNoListener is returned when listener being removed is not registered.
	ErrNoListener = errors.New("listener is not registered")
)

// Document is a parsed HTML document with listeners attached to its nodes.
// It is not safe for concurrent use, all access is expected from a single
// event loop.
type Document struct {
	root      *html.Node
	listeners map[*html.Node][]registration
	next      ListenerID
}

// Parse reads HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return New(root), nil
}

// New wraps already parsed tree.
func New(root *html.Node) *Document {
	return &Document{
		root:      root,
		listeners: make(map[*html.Node][]registration),
	}
}

// Root returns document node, target of document level listeners.
func (d *Document) Root() *html.Node {
	return d.root
}

// Head returns head element or nil.
func (d *Document) Head() *html.Node {
	return findFirst(d.root, atom.Head)
}

// Body returns body element or nil.
func (d *Document) Body() *html.Node {
	return findFirst(d.root, atom.Body)
}

// Tables returns all table elements in document order.
func (d *Document) Tables() []*html.Node {
	return d.Elements(func(n *html.Node) bool {
		return n.DataAtom == atom.Table
	})
}

// WithAttr returns all elements carrying attribute key in document order.
func (d *Document) WithAttr(key string) []*html.Node {
	return d.Elements(func(n *html.Node) bool {
		return HasAttr(n, key)
	})
}

// Elements returns elements matching predicate in document order.
func (d *Document) Elements(match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	for n := range d.root.Descendants() {
		if n.Type == html.ElementNode && match(n) {
			found = append(found, n)
		}
	}
	return found
}

// Contains reports whether n is part of the document tree.
func (d *Document) Contains(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == d.root {
			return true
		}
	}
	return false
}

// Detach removes node from its parent. Listeners registered on the node are
// kept, the same way browsers keep them on removed elements.
func (d *Document) Detach(n *html.Node) error {
	if n.Parent == nil {
		return ErrDetached
	}
	n.Parent.RemoveChild(n)
	return nil
}

func findFirst(root *html.Node, a atom.Atom) *html.Node {
	for n := range root.Descendants() {
		if n.Type == html.ElementNode && n.DataAtom == a {
			return n
		}
	}
	return nil
}

// Attr returns value of attribute key.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether n carries attribute key.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr sets attribute key to val replacing previous value if any.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr removes attribute key, reports whether it was present.
func RemoveAttr(n *html.Node, key string) bool {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return true
		}
	}
	return false
}

package snapshot

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// renderedText approximates what browser shows for the element: whitespace
// runs collapse into single space, line breaks and block boundaries become
// new lines, invisible elements are skipped and result is trimmed.
// Preformatted lines keep their spaces.
func renderedText(n *html.Node) string {
	w := &textWriter{}
	w.collect(n, false)

	lines := strings.Split(w.b.String(), "\n")
	for i, line := range lines {
		if !w.pre[i] {
			lines[i] = strings.Trim(line, " ")
		}
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

type textWriter struct {
	b     strings.Builder
	space bool
	line  int
	// lines holding preformatted text
	pre map[int]bool
}

func (w *textWriter) text(s string, pre bool) {
	if pre {
		if w.pre == nil {
			w.pre = make(map[int]bool)
		}
		n := strings.Count(s, "\n")
		for i := 0; i <= n; i++ {
			w.pre[w.line+i] = true
		}
		w.line += n
		w.b.WriteString(s)
		w.space = strings.HasSuffix(s, " ")
		return
	}
	for _, r := range s {
		if isHTMLSpace(r) {
			if !w.space {
				w.b.WriteByte(' ')
			}
			w.space = true
			continue
		}
		w.space = false
		w.b.WriteRune(r)
	}
}

// newline breaks the line, block boundaries (force is false) never produce
// empty lines.
func (w *textWriter) newline(force bool) {
	if !force {
		if s := w.b.String(); len(s) == 0 || s[len(s)-1] == '\n' {
			return
		}
	}
	w.b.WriteByte('\n')
	w.line++
	w.space = true
}

func (w *textWriter) collect(n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data, pre)
		return
	case html.ElementNode:
	default:
		for c := range n.ChildNodes() {
			w.collect(c, pre)
		}
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Template, atom.Noscript, atom.Head:
		return
	case atom.Br:
		w.newline(true)
		return
	case atom.Pre, atom.Textarea, atom.Listing:
		pre = true
	}

	block := isBlock(n.DataAtom)
	if block {
		w.newline(false)
	}
	for c := range n.ChildNodes() {
		w.collect(c, pre)
	}
	if block {
		w.newline(false)
	}
}

// HTML whitespace, non breaking space is not one of them.
func isHTMLSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.Address, atom.Article, atom.Aside, atom.Blockquote, atom.Details, atom.Dd,
		atom.Div, atom.Dl, atom.Dt, atom.Fieldset, atom.Figcaption, atom.Figure, atom.Footer,
		atom.Form, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Header, atom.Hr,
		atom.Li, atom.Main, atom.Nav, atom.Ol, atom.P, atom.Pre, atom.Section, atom.Summary,
		atom.Table, atom.Tr, atom.Ul, atom.Caption:
		return true
	}
	return false
}

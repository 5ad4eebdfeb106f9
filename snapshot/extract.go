package snapshot

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"tgrab/common"
)

// Browsers clamp spans the same way.
const (
	maxColSpan = 1000
	maxRowSpan = 65534
)

// Extract snapshots table element. Attributes named in skipAttrs (grab mode
// markers) are left out of captured markup. Extract never fails, table
// without rows produces snapshot with no rows.
func Extract(table *html.Node, skipAttrs ...string) *Snapshot {
	s := &Snapshot{Rows: make([]Row, 0)}

	for c := range table.ChildNodes() {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Caption:
			if s.Caption == nil {
				caption := renderedText(c)
				s.Caption = &caption
			}
		case atom.Tr:
			s.Rows = append(s.Rows, extractRow(c))
		case atom.Thead, atom.Tbody, atom.Tfoot:
			for tr := range c.ChildNodes() {
				if tr.Type == html.ElementNode && tr.DataAtom == atom.Tr {
					s.Rows = append(s.Rows, extractRow(tr))
				}
			}
		}
	}

	s.Markup = outerHTML(table, skipAttrs)
	return s
}

func extractRow(tr *html.Node) Row {
	row := make(Row, 0)
	for c := range tr.ChildNodes() {
		if c.Type != html.ElementNode {
			continue
		}
		var kind common.CellKind
		switch c.DataAtom {
		case atom.Td:
			kind = common.CellKindTd
		case atom.Th:
			kind = common.CellKindTh
		default:
			continue
		}
		row = append(row, Cell{
			Kind:    kind,
			Text:    renderedText(c),
			ColSpan: span(c, "colspan", maxColSpan),
			RowSpan: span(c, "rowspan", maxRowSpan),
		})
	}
	return row
}

func span(n *html.Node, key string, limit int) int {
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != key {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(a.Val))
		if err != nil || v < 1 {
			return 1
		}
		return min(v, limit)
	}
	return 1
}

func outerHTML(n *html.Node, skipAttrs []string) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, clone(n, skipAttrs)); err != nil {
		return ""
	}
	return buf.String()
}

// clone makes detached deep copy of n without skipped attributes.
func clone(n *html.Node, skipAttrs []string) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && containsString(skipAttrs, a.Key) {
			continue
		}
		c.Attr = append(c.Attr, a)
	}
	for child := range n.ChildNodes() {
		c.AppendChild(clone(child, skipAttrs))
	}
	return c
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

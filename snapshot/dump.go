package snapshot

import (
	"fmt"
	"strconv"
	"strings"
)

// treeWriter produces indented human readable dumps for debug reports.
type treeWriter struct {
	w strings.Builder
}

func (tw *treeWriter) line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	fmt.Fprintf(&tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw *treeWriter) text(depth int, label, value string) {
	tw.line(depth, "%s: %s", label, quoteText(value))
}

func quoteText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}

// Dump renders snapshot structure as indented tree.
func (s *Snapshot) Dump() string {
	tw := &treeWriter{}
	tw.line(0, "table rows=%d", len(s.Rows))
	if s.Caption != nil {
		tw.text(1, "caption", *s.Caption)
	} else {
		tw.line(1, "caption: <none>")
	}
	for i, row := range s.Rows {
		tw.line(1, "row %d cells=%d", i, len(row))
		for j, c := range row {
			tw.line(2, "%s %d colspan=%d rowspan=%d", c.Kind, j, c.ColSpan, c.RowSpan)
			if c.Text != "" {
				tw.text(3, "text", c.Text)
			}
		}
	}
	return tw.w.String()
}

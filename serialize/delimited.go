package serialize

import (
	"strings"

	"tgrab/snapshot"
)

const (
	valueDelimiter = ","
	rowDelimiter   = "\n"
)

// Delimited renders snapshot as comma separated values, one line per row
// without trailing delimiter. Spans are not expanded, each cell is emitted
// once where it was found.
func Delimited(s *snapshot.Snapshot) string {
	var b strings.Builder
	for i, row := range s.Rows {
		if i > 0 {
			b.WriteString(rowDelimiter)
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteString(valueDelimiter)
			}
			b.WriteString(escapeValue(cell.Text))
		}
	}
	return b.String()
}

// escapeValue doubles quotes and wraps value in quotes when original value
// has quote, comma or new line.
func escapeValue(value string) string {
	hasQuote := strings.Contains(value, `"`)
	needsQuoting := hasQuote || strings.Contains(value, valueDelimiter) || strings.Contains(value, rowDelimiter)
	if hasQuote {
		value = strings.ReplaceAll(value, `"`, `""`)
	}
	if needsQuoting {
		value = `"` + value + `"`
	}
	return value
}

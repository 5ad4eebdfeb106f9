package serialize

import (
	"bytes"
	"encoding/json"
	"strings"

	"tgrab/snapshot"
)

// field order is part of the output format
type jsonCell struct {
	Type    string `json:"type"`
	Data    string `json:"data"`
	ColSpan int    `json:"colSpan"`
	RowSpan int    `json:"rowSpan"`
}

type jsonTable struct {
	Caption *string      `json:"caption"`
	Rows    [][]jsonCell `json:"rows"`
}

// Structured renders snapshot as pretty printed JSON document with caption
// and rows of cells.
func Structured(s *snapshot.Snapshot) string {
	out := jsonTable{
		Caption: s.Caption,
		Rows:    make([][]jsonCell, 0, len(s.Rows)),
	}
	for _, row := range s.Rows {
		cells := make([]jsonCell, 0, len(row))
		for _, c := range row {
			cells = append(cells, jsonCell{
				Type:    c.Kind.String(),
				Data:    c.Text,
				ColSpan: c.ColSpan,
				RowSpan: c.RowSpan,
			})
		}
		out.Rows = append(out.Rows, cells)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		// plain strings and integers always encode
		panic("unable to encode table snapshot: " + err.Error())
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

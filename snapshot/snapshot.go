// Package snapshot reads a live table element into an immutable value
// decoupled from the document.
package snapshot

import "tgrab/common"

// Snapshot is a point in time copy of a table. It is never modified after
// Extract returns it.
type Snapshot struct {
	// Caption is nil when table has no caption element. Caption element
	// without text yields pointer to empty string.
	Caption *string
	// Rows in document order.
	Rows []Row
	// Markup is serialized outer HTML of the table.
	Markup string
}

// Row holds cells in column order.
type Row []Cell

// Cell of a table. Spans are carried as found, never expanded.
type Cell struct {
	Kind    common.CellKind
	Text    string
	ColSpan int
	RowSpan int
}

// HasCaption reports whether source table had caption element.
func (s *Snapshot) HasCaption() bool {
	return s.Caption != nil
}

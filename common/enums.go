// Package common keeps enumerations shared between configuration, the
// serialization engine and the activation controller.
package common

//go:generate go tool go-enum --marshal --names

// Supported export formats, in the order they are offered to the user.
// ENUM(csv, html, json)
type ExportFmt int

func (f ExportFmt) Ext() string {
	switch f {
	case ExportFmtCsv:
		return ".csv"
	case ExportFmtHtml:
		return ".html"
	case ExportFmtJson:
		return ".json"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

func (f ExportFmt) ContentType() string {
	switch f {
	case ExportFmtCsv:
		return "text/csv"
	case ExportFmtHtml:
		return "text/html"
	case ExportFmtJson:
		return "application/json"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Committing popup actions. Cancel is not an action, it is the absence of one.
// ENUM(copy, download)
type PopupAction int

// Kind of table cell, named after the element producing it.
// ENUM(td, th)
type CellKind int

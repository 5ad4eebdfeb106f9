// Package serialize renders table snapshots into export formats. All
// transforms are pure and never fail for a well formed snapshot.
package serialize

import (
	"slices"

	"tgrab/common"
	"tgrab/snapshot"
)

// Transform renders snapshot into format payload.
type Transform func(*snapshot.Snapshot) string

// Format describes one export format. Formats are static configuration.
type Format struct {
	Fmt         common.ExportFmt
	Name        string
	ContentType string
	Ext         string
	Transform   Transform
}

// ID returns unique format identifier.
func (f Format) ID() string {
	return f.Fmt.String()
}

func newFormat(f common.ExportFmt, fn Transform) Format {
	return Format{
		Fmt:         f,
		Name:        f.String(),
		ContentType: f.ContentType(),
		Ext:         f.Ext(),
		Transform:   fn,
	}
}

var formats = []Format{
	newFormat(common.ExportFmtCsv, Delimited),
	newFormat(common.ExportFmtHtml, Markup),
	newFormat(common.ExportFmtJson, Structured),
}

// Formats returns all supported formats in presentation order.
func Formats() []Format {
	return slices.Clone(formats)
}

// Lookup finds format by its identifier.
func Lookup(id string) (Format, bool) {
	f, err := common.ParseExportFmt(id)
	if err != nil {
		return Format{}, false
	}
	return ByFmt(f)
}

// ByFmt finds format description for enumeration value.
func ByFmt(f common.ExportFmt) (Format, bool) {
	for _, format := range formats {
		if format.Fmt == f {
			return format, true
		}
	}
	return Format{}, false
}

package serialize

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"tgrab/common"
	"tgrab/snapshot"
)

func extract(t *testing.T, src string) *snapshot.Snapshot {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	for n := range doc.Descendants() {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			return snapshot.Extract(n)
		}
	}
	t.Fatal("no table in source")
	return nil
}

func ptr(s string) *string { return &s }

func TestFormats_Order(t *testing.T) {
	got := Formats()
	want := []struct{ id, ext, ct string }{
		{"csv", ".csv", "text/csv"},
		{"html", ".html", "text/html"},
		{"json", ".json", "application/json"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d formats, want %d", len(got), len(want))
	}
	for i, w := range want {
		f := got[i]
		if f.ID() != w.id || f.Name != w.id || f.Ext != w.ext || f.ContentType != w.ct || f.Transform == nil {
			t.Errorf("format %d = %+v, want %+v", i, f, w)
		}
	}

	// callers must not be able to alter registry
	got[0].Name = "changed"
	if Formats()[0].Name != "csv" {
		t.Error("Formats() exposes internal slice")
	}
}

func TestLookup(t *testing.T) {
	f, ok := Lookup("json")
	if !ok || f.Fmt != common.ExportFmtJson {
		t.Errorf("Lookup(json) = %+v, %v", f, ok)
	}
	if _, ok := Lookup("xml"); ok {
		t.Error("Lookup(xml) must fail")
	}
	if _, ok := Lookup(""); ok {
		t.Error("Lookup(\"\") must fail")
	}
}

func TestDelimited_Escaping(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", "abc", "abc"},
		{"quote and comma", `He said "hi", ok`, `"He said ""hi"", ok"`},
		{"quote only", `a"b`, `"a""b"`},
		{"comma only", "a,b", `"a,b"`},
		{"newline", "a\nb", "\"a\nb\""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeValue(tt.in); got != tt.want {
				t.Errorf("escapeValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDelimited_Table(t *testing.T) {
	s := extract(t, `<table>
<tr><th>Name</th><th>Quote</th></tr>
<tr><td>Bob</td><td>He said "hi", ok</td></tr>
<tr><td>Ann<br>Lee</td><td>1</td></tr>
</table>`)

	want := "Name,Quote\nBob,\"He said \"\"hi\"\", ok\"\n\"Ann\nLee\",1"
	if got := Delimited(s); got != want {
		t.Errorf("Delimited() = %q, want %q", got, want)
	}
}

func TestDelimited_RoundTrip(t *testing.T) {
	s := extract(t, `<table><tr><td>a</td><td>b</td></tr><tr><td>c</td><td>d</td></tr></table>`)
	var rows [][]string
	for line := range strings.SplitSeq(Delimited(s), "\n") {
		rows = append(rows, strings.Split(line, ","))
	}
	if len(rows) != len(s.Rows) {
		t.Fatalf("got %d lines, want %d", len(rows), len(s.Rows))
	}
	for i, row := range s.Rows {
		for j, c := range row {
			if rows[i][j] != c.Text {
				t.Errorf("cell [%d][%d] = %q, want %q", i, j, rows[i][j], c.Text)
			}
		}
	}
}

func TestEmptyTable(t *testing.T) {
	s := extract(t, `<table></table>`)

	if got := Delimited(s); got != "" {
		t.Errorf("Delimited() = %q, want empty", got)
	}
	if got := Markup(s); got != "<table></table>" {
		t.Errorf("Markup() = %q", got)
	}
	want := "{\n  \"caption\": null,\n  \"rows\": []\n}"
	if got := Structured(s); got != want {
		t.Errorf("Structured() = %q, want %q", got, want)
	}
}

func TestMergedHeader(t *testing.T) {
	s := extract(t, `<table><tr><th colspan="2">H</th></tr><tr><td>a</td><td>b</td></tr></table>`)

	if got, want := Delimited(s), "H\na,b"; got != want {
		t.Errorf("Delimited() = %q, want %q", got, want)
	}
	if got := Markup(s); !strings.Contains(got, `<th colspan="2">H</th>`) {
		t.Errorf("Markup() = %q, missing merged header", got)
	}

	want := `{
  "caption": null,
  "rows": [
    [
      {
        "type": "th",
        "data": "H",
        "colSpan": 2,
        "rowSpan": 1
      }
    ],
    [
      {
        "type": "td",
        "data": "a",
        "colSpan": 1,
        "rowSpan": 1
      },
      {
        "type": "td",
        "data": "b",
        "colSpan": 1,
        "rowSpan": 1
      }
    ]
  ]
}`
	if got := Structured(s); got != want {
		t.Errorf("Structured() =\n%s\nwant\n%s", got, want)
	}
}

func TestStructured_Caption(t *testing.T) {
	tests := []struct {
		name    string
		caption *string
		want    string
	}{
		{"present", ptr("Sales"), `"caption": "Sales"`},
		{"blank", ptr(""), `"caption": ""`},
		{"absent", nil, `"caption": null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Structured(&snapshot.Snapshot{Caption: tt.caption})
			if !strings.Contains(got, tt.want) {
				t.Errorf("Structured() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestStructured_NoHTMLEscaping(t *testing.T) {
	s := &snapshot.Snapshot{Rows: []snapshot.Row{{{Kind: common.CellKindTd, Text: "a < b & c", ColSpan: 1, RowSpan: 1}}}}
	if got := Structured(s); !strings.Contains(got, `"data": "a < b & c"`) {
		t.Errorf("Structured() = %q, HTML characters must be kept", got)
	}
}

package common

import (
	"errors"
	"testing"
)

func TestExportFmtOrder(t *testing.T) {
	names := ExportFmtNames()
	want := []string{"csv", "html", "json"}
	if len(names) != len(want) {
		t.Fatalf("ExportFmtNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ExportFmtNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestExportFmtAttributes(t *testing.T) {
	tests := []struct {
		f           ExportFmt
		ext         string
		contentType string
	}{
		{ExportFmtCsv, ".csv", "text/csv"},
		{ExportFmtHtml, ".html", "text/html"},
		{ExportFmtJson, ".json", "application/json"},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			if got := tt.f.Ext(); got != tt.ext {
				t.Errorf("Ext() = %q, want %q", got, tt.ext)
			}
			if got := tt.f.ContentType(); got != tt.contentType {
				t.Errorf("ContentType() = %q, want %q", got, tt.contentType)
			}
		})
	}
}

func TestExportFmtExtPanicsOnUnknown(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for unknown format")
		}
	}()
	ExportFmt(42).Ext()
}

func TestParseExportFmt(t *testing.T) {
	f, err := ParseExportFmt("json")
	if err != nil {
		t.Fatalf("ParseExportFmt(json) error = %v", err)
	}
	if f != ExportFmtJson {
		t.Errorf("ParseExportFmt(json) = %v, want %v", f, ExportFmtJson)
	}

	if _, err := ParseExportFmt("xlsx"); !errors.Is(err, ErrInvalidExportFmt) {
		t.Errorf("ParseExportFmt(xlsx) error = %v, want ErrInvalidExportFmt", err)
	}
}

func TestExportFmtUnmarshalText(t *testing.T) {
	var f ExportFmt
	if err := f.UnmarshalText([]byte("html")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if f != ExportFmtHtml {
		t.Errorf("UnmarshalText() = %v, want html", f)
	}
	if err := f.UnmarshalText([]byte("pdf")); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestPopupAction(t *testing.T) {
	if PopupActionCopy.String() != "copy" || PopupActionDownload.String() != "download" {
		t.Errorf("unexpected action names: %v", PopupActionNames())
	}
	if PopupAction(7).IsValid() {
		t.Error("PopupAction(7) must not be valid")
	}
}

func TestCellKind(t *testing.T) {
	if CellKindTh.String() != "th" {
		t.Errorf("CellKindTh.String() = %q, want th", CellKindTh.String())
	}
}

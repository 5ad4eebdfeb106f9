package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()

	r, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer r.Close()

	files := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_Finalize(t *testing.T) {
	tmpDir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	logFile := filepath.Join(tmpDir, "final.log")
	if err := os.WriteFile(logFile, []byte("log line"), 0644); err != nil {
		t.Fatalf("failed to write log: %v", err)
	}

	r.Store("final.log", logFile)
	r.Store("missing.log", filepath.Join(tmpDir, "absent.log"))
	r.StoreData("export-1/result.csv", []byte("a,b"))

	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["final.log"] != "log line" {
		t.Errorf("final.log = %q, want %q", files["final.log"], "log line")
	}
	if files["export-1/result.csv"] != "a,b" {
		t.Errorf("export data = %q, want %q", files["export-1/result.csv"], "a,b")
	}
	if _, ok := files["missing.log"]; ok {
		t.Error("absent file must not be archived")
	}
	manifest := files["MANIFEST"]
	for _, name := range []string{"final.log", "missing.log", "export-1/result.csv", "<3 bytes>"} {
		if !strings.Contains(manifest, name) {
			t.Errorf("MANIFEST does not mention %q:\n%s", name, manifest)
		}
	}
}

func TestReport_NilIsNoop(t *testing.T) {
	var r *Report

	r.Store("a", "b")
	r.StoreData("c", []byte("d"))
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	if r.Name() != "" {
		t.Errorf("Name() = %q, want empty", r.Name())
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestReport_StoreDataTwicePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.StoreData("x", []byte("1"))

	defer func() {
		if rec := recover(); rec == nil {
			t.Error("Expected panic on duplicate data entry")
		}
	}()
	r.StoreData("x", []byte("2"))
}

func TestReport_StoreSamePathTwice(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("log", "/tmp/a.log")
	// same path under the same name is allowed
	r.Store("log", "/tmp/a.log")
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

package sink

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"tgrab/serialize"
)

func TestConsoleNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf, zaptest.NewLogger(t))
	n.Notify("Copied!")
	n.Notify("No tables found on the page")

	if got, want := buf.String(), "Copied!\nNo tables found on the page\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestClipboard_WriteFailure(t *testing.T) {
	c := NewClipboard(zaptest.NewLogger(t))
	errWrite := errors.New("xclip not found")
	c.write = func(string) error { return errWrite }

	if err := c.Copy("x"); !errors.Is(err, errWrite) && !errors.Is(err, ErrNoClipboard) {
		t.Errorf("Copy() error = %v", err)
	}
}

func TestClipboard_Write(t *testing.T) {
	c := NewClipboard(zaptest.NewLogger(t))
	var got string
	c.write = func(s string) error { got = s; return nil }

	err := c.Copy("a,b")
	if errors.Is(err, ErrNoClipboard) {
		t.Skip("clipboard is not supported")
	}
	if err != nil || got != "a,b" {
		t.Errorf("Copy() = %v, clipboard %q", err, got)
	}
}

func TestDownloader(t *testing.T) {
	dir := t.TempDir()
	csv, _ := serialize.Lookup("csv")

	d := NewDownloader(dir, false, 10*time.Millisecond, zaptest.NewLogger(t))
	if err := d.Download("a,b", "example-com-table", csv); err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "example-com-table.csv"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "a,b" {
		t.Errorf("file content = %q", data)
	}

	// existing file is kept unless overwrite is enabled
	if err := d.Download("c,d", "example-com-table", csv); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second Download() error = %v, want already exists", err)
	}

	over := NewDownloader(dir, true, 10*time.Millisecond, zaptest.NewLogger(t))
	if err := over.Download("c,d", "example-com-table", csv); err != nil {
		t.Fatalf("Download() with overwrite error = %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(dir, "example-com-table.csv"))
	if string(data) != "c,d" {
		t.Errorf("overwritten content = %q", data)
	}

	d.Wait()
	over.Wait()
}

func TestDownloader_ReleasesStagedFile(t *testing.T) {
	json, _ := serialize.Lookup("json")
	d := NewDownloader(t.TempDir(), false, time.Millisecond, zaptest.NewLogger(t))
	d.stagingDir = t.TempDir()

	if err := d.Download("{}", "t", json); err != nil {
		t.Fatal(err)
	}
	d.Wait()
	left, _ := filepath.Glob(filepath.Join(d.stagingDir, "tgrab-*.json"))
	if len(left) != 0 {
		t.Errorf("staged files left: %v", left)
	}
}

func TestDownloader_Path(t *testing.T) {
	html, _ := serialize.Lookup("html")
	d := NewDownloader("out", false, 0, zaptest.NewLogger(t))
	if got, want := d.Path("../x", html), filepath.Join("out", "x.html"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

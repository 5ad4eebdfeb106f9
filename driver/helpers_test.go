package driver

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"tgrab/config"
	"tgrab/state"
)

const samplePage = `<!DOCTYPE html>
<html><head><title>Sample</title><link rel="canonical" href="https://www.example.com/report"></head>
<body>
<table><caption>Sales</caption><tr><th>Name</th><th>Total</th></tr><tr><td>Bob</td><td>10</td></tr></table>
<table><tr><td>only</td></tr></table>
</body></html>`

func newEnv(t *testing.T) *state.LocalEnv {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Preferences.Path = filepath.Join(t.TempDir(), "prefs.db")
	cfg.Download.ReleaseDelay = 0
	return &state.LocalEnv{Cfg: cfg, Log: zaptest.NewLogger(t)}
}

func writeFile(t *testing.T, path string, data []byte) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeZip(t *testing.T, path string, files map[string]string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	w := zip.NewWriter(out)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// Package archive walks zip archives looking for documents.
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/maruel/natural"
	"golang.org/x/text/encoding"
)

// Entry is a file found in archive.
type Entry struct {
	// Archive is path to archive passed to Walk.
	Archive string
	// Name is path inside archive, decoded with forced code page if one was
	// requested and file name is not marked as UTF-8.
	Name string
	File *zip.File
}

// WalkFunc is called for each matching entry. If an error is returned,
// processing stops.
type WalkFunc func(e Entry) error

type walker struct {
	prefix   string
	match    func(name string) bool
	codePage encoding.Encoding
}

// Option changes Walk behavior.
type Option func(*walker)

// WithPrefix limits Walk to entries which path inside archive starts with
// prefix.
func WithPrefix(prefix string) Option {
	return func(w *walker) { w.prefix = prefix }
}

// WithMatch limits Walk to entries which (decoded) name satisfies match.
func WithMatch(match func(name string) bool) Option {
	return func(w *walker) { w.match = match }
}

// WithCodePage decodes non UTF-8 entry names using enc. Nil is ignored.
func WithCodePage(enc encoding.Encoding) Option {
	return func(w *walker) { w.codePage = enc }
}

// Walk calls walkFn for every regular file in archive satisfying options, in
// natural order of names. Archive with absolute entry paths or paths
// containing ".." is rejected.
func Walk(archive string, walkFn WalkFunc, opts ...Option) error {
	w := walker{}
	for _, o := range opts {
		o(&w)
	}

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	entries := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		if !isSafePath(f.Name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", f.Name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(f.Name, w.prefix) {
			continue
		}
		name := w.decode(f)
		if w.match != nil && !w.match(name) {
			continue
		}
		entries = append(entries, Entry{Archive: archive, Name: name, File: f})
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		switch {
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		}
		return 0
	})

	for _, e := range entries {
		if err := walkFn(e); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) decode(f *zip.File) string {
	if w.codePage == nil || !f.NonUTF8 {
		return f.Name
	}
	if n, err := w.codePage.NewDecoder().String(f.Name); err == nil {
		return n
	}
	return f.Name
}

// isSafePath returns false for absolute paths and those containing ".."
// components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	return !slices.Contains(strings.Split(name, "/"), "..")
}

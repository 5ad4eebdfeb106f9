package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"

	"tgrab/archive"
	"tgrab/dom"
)

// Page is a loaded HTML document.
type Page struct {
	// Path identifies page for the user: file path, or archive path joined
	// with path inside archive.
	Path string
	// Name is file name of the page without directories.
	Name string
	Doc  *dom.Document
}

// enough for all signatures filetype knows about
const headerSize = 262

func readHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return head[:n], nil
}

func isArchiveFile(path string) (bool, error) {
	head, err := readHeader(path)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

// isBinaryFile reports whether file content is recognized as some known
// binary format, HTML is never recognized.
func isBinaryFile(path string) (bool, error) {
	head, err := readHeader(path)
	if err != nil {
		return false, err
	}
	kind, err := filetype.Match(head)
	if err != nil {
		return false, err
	}
	return kind != filetype.Unknown, nil
}

func isHTMLName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

func parsePage(r io.Reader, path string) (*Page, error) {
	// detects encoding from BOM or meta tags
	ur, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, fmt.Errorf("unable to detect encoding of '%s': %w", path, err)
	}
	doc, err := dom.Parse(ur)
	if err != nil {
		return nil, fmt.Errorf("unable to parse '%s': %w", path, err)
	}
	return &Page{Path: path, Name: filepath.Base(filepath.FromSlash(path)), Doc: doc}, nil
}

func loadFile(path, display string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parsePage(f, display)
}

// Load reads pages from src. Source could be a single file, a directory
// (all HTML files under it), an archive or archive followed by path inside
// it. Pages are returned in natural order of their paths.
func Load(ctx context.Context, src string, cp encoding.Encoding, log *zap.Logger) ([]*Page, error) {
	var (
		pages      []*Page
		head, tail string
	)
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exist - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if pages, err = loadDir(ctx, head, cp, log); err != nil {
				return nil, fmt.Errorf("unable to load directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return nil, fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return nil, fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if pages, err = loadArchive(ctx, head, filepath.ToSlash(tail), cp, log); err != nil {
				return nil, fmt.Errorf("unable to load archive: %w", err)
			}
			break
		}

		if len(tail) != 0 {
			return nil, fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		binary, err := isBinaryFile(head)
		if err != nil {
			return nil, fmt.Errorf("unable to check file type: %w", err)
		}
		if binary {
			return nil, fmt.Errorf("input was not recognized as HTML document (%s)", head)
		}
		page, err := loadFile(head, head)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
		break
	}
	if len(head) == 0 {
		return nil, fmt.Errorf("input source was not found (%s)", src)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no HTML documents found in (%s)", src)
	}
	return pages, nil
}

func loadDir(ctx context.Context, dir string, cp encoding.Encoding, log *zap.Logger) ([]*Page, error) {
	var pages []*Page
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if isHTMLName(path) {
			page, err := loadFile(path, path)
			if err != nil {
				log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
				return nil
			}
			pages = append(pages, page)
			return nil
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !isArchive {
			log.Debug("Skipping file, not recognized as HTML or archive", zap.String("file", path))
			return nil
		}
		found, err := loadArchive(ctx, path, "", cp, log)
		if err != nil {
			log.Warn("Skipping archive", zap.String("file", path), zap.Error(err))
			return nil
		}
		pages = append(pages, found...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(pages, func(i, j int) bool {
		return natural.Less(pages[i].Path, pages[j].Path)
	})
	return pages, nil
}

func loadArchive(ctx context.Context, path, pathIn string, cp encoding.Encoding, log *zap.Logger) ([]*Page, error) {
	var pages []*Page
	err := archive.Walk(path, func(e archive.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		r, err := e.File.Open()
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", e.Archive), zap.String("file", e.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		page, err := parsePage(r, filepath.Join(e.Archive, filepath.FromSlash(e.Name)))
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", e.Archive), zap.String("file", e.Name), zap.Error(err))
			return nil
		}
		pages = append(pages, page)
		return nil
	},
		archive.WithPrefix(pathIn),
		archive.WithMatch(isHTMLName),
		archive.WithCodePage(cp),
	)
	if err != nil {
		return nil, err
	}
	return pages, nil
}

package sink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"tgrab/config"
	"tgrab/serialize"
)

// Downloader saves exported tables as files. Payload is first staged in a
// transient file which is released shortly after download completes.
type Downloader struct {
	dir       string
	overwrite bool
	release   time.Duration
	log       *zap.Logger

	// empty means system temporary directory
	stagingDir string

	pending sync.WaitGroup
}

func NewDownloader(dir string, overwrite bool, release time.Duration, log *zap.Logger) *Downloader {
	return &Downloader{
		dir:       dir,
		overwrite: overwrite,
		release:   release,
		log:       log.Named("sink"),
	}
}

// Path returns full name of the file download would produce.
func (d *Downloader) Path(basename string, f serialize.Format) string {
	return filepath.Join(d.dir, config.CleanFileName(basename)+f.Ext)
}

func (d *Downloader) Download(text, basename string, f serialize.Format) error {
	dst := d.Path(basename, f)
	if !d.overwrite {
		if _, err := os.Stat(dst); err == nil {
			return fmt.Errorf("file '%s' already exists", dst)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("unable to check file '%s': %w", dst, err)
		}
	}

	staged, err := d.stage(text, f)
	if err != nil {
		return err
	}
	defer d.scheduleRelease(staged)

	if err := copyFile(dst, staged); err != nil {
		return err
	}
	d.log.Info("Table downloaded", zap.String("file", dst), zap.String("type", f.ContentType), zap.Int("bytes", len(text)))
	return nil
}

// Wait blocks until all staged files are released.
func (d *Downloader) Wait() {
	d.pending.Wait()
}

func (d *Downloader) stage(text string, f serialize.Format) (string, error) {
	tmp, err := os.CreateTemp(d.stagingDir, "tgrab-*"+f.Ext)
	if err != nil {
		return "", fmt.Errorf("unable to stage download: %w", err)
	}
	if _, err := io.WriteString(tmp, text); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("unable to stage download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("unable to stage download: %w", err)
	}
	return tmp.Name(), nil
}

func (d *Downloader) scheduleRelease(staged string) {
	d.pending.Add(1)
	time.AfterFunc(d.release, func() {
		defer d.pending.Done()
		if err := os.Remove(staged); err != nil {
			d.log.Debug("Unable to release staged download", zap.String("file", staged), zap.Error(err))
		}
	})
}

func copyFile(dst, src string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open staged download: %w", err)
	}
	defer in.Close()

	if dir := filepath.Dir(dst); len(dir) > 0 {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create destination directory: %w", err)
		}
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create '%s': %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("unable to close '%s': %w", dst, cerr)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("unable to write '%s': %w", dst, err)
	}
	return nil
}

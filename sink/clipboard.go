package sink

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// ErrNoClipboard is returned when system has no usable clipboard.
var ErrNoClipboard = errors.New("clipboard is not supported on this system")

// Clipboard copies text to system clipboard.
type Clipboard struct {
	write func(string) error
	log   *zap.Logger
}

func NewClipboard(log *zap.Logger) *Clipboard {
	return &Clipboard{write: clipboard.WriteAll, log: log.Named("sink")}
}

func (c *Clipboard) Copy(text string) error {
	if c.write == nil || clipboard.Unsupported {
		return ErrNoClipboard
	}
	if err := c.write(text); err != nil {
		return fmt.Errorf("unable to write clipboard: %w", err)
	}
	c.log.Debug("Copied to clipboard", zap.Int("bytes", len(text)))
	return nil
}

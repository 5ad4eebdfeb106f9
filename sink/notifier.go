// Package sink implements output side of grab mode: user notifications,
// clipboard and file downloads.
package sink

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// ConsoleNotifier prints notifications to a writer, one per line.
type ConsoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
	log *zap.Logger
}

func NewConsoleNotifier(out io.Writer, log *zap.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{out: out, log: log.Named("sink")}
}

func (n *ConsoleNotifier) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.log.Debug("Notification", zap.String("message", msg))
	if _, err := fmt.Fprintf(n.out, "%s\n", msg); err != nil {
		n.log.Warn("Unable to show notification", zap.String("message", msg), zap.Error(err))
	}
}

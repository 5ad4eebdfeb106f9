package grab

import (
	"context"
	"sync"
)

// Loop is a single threaded FIFO message queue. Post may be called from any
// goroutine, messages are always handled on the goroutine calling Drain or
// Run.
type Loop struct {
	handle func(Message)

	mu    sync.Mutex
	queue []Message

	wake     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates loop delivering messages to handle.
func NewLoop(handle func(Message)) *Loop {
	return &Loop{
		handle: handle,
		wake:   make(chan struct{}, 1),
		stop:   make(chan struct{}),
	}
}

// Post queues message. It never blocks.
func (l *Loop) Post(m Message) {
	l.mu.Lock()
	l.queue = append(l.queue, m)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending returns number of queued messages.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *Loop) pop() (Message, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.queue) == 0 {
		return nil, false
	}
	m := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return m, true
}

// Drain handles queued messages in order, including messages posted while
// draining, and returns number of handled messages.
func (l *Loop) Drain() int {
	count := 0
	for {
		m, ok := l.pop()
		if !ok {
			return count
		}
		l.handle(m)
		count++
	}
}

// Run handles messages as they arrive until context is done or Stop is
// called. Messages queued at that moment are left in the queue.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		case <-l.wake:
		}
	}
}

// Stop makes Run return. It is safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

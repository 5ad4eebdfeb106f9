package grab

import (
	"github.com/google/uuid"
	"golang.org/x/net/html"

	"tgrab/dom"
	"tgrab/snapshot"
)

// Session is grab mode state of a single document. Zero value is not usable,
// use NewSession. Session is mutated only on the loop goroutine.
type Session struct {
	active     bool
	generation uint64

	tables []*html.Node
	style  *html.Node
	stack  Stack

	keyID    dom.ListenerID
	keyArmed bool

	// snapshots waiting for popup answer
	pending map[uuid.UUID]*snapshot.Snapshot
}

// NewSession returns inactive session.
func NewSession() *Session {
	return &Session{pending: make(map[uuid.UUID]*snapshot.Snapshot)}
}

// Active reports whether grab mode is on.
func (s *Session) Active() bool {
	return s.active
}

// Tables returns number of tables marked by current activation.
func (s *Session) Tables() int {
	return len(s.tables)
}

// Pending returns number of popups waiting for answer.
func (s *Session) Pending() int {
	return len(s.pending)
}

func (s *Session) begin(tables []*html.Node) uint64 {
	s.active = true
	s.generation++
	s.tables = tables
	s.style = nil
	s.stack = Stack{}
	s.keyArmed = false
	clear(s.pending)
	return s.generation
}

func (s *Session) end() {
	s.active = false
	s.tables = nil
	s.style = nil
	clear(s.pending)
}

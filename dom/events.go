package dom

import (
	"fmt"

	"golang.org/x/net/html"
)

// Event types supported by the document.
const (
	EventClick   = "click"
	EventKeyDown = "keydown"
)

// Event is delivered to listeners of its target and of every ancestor.
type Event struct {
	Type   string
	Target *html.Node
	// Key is set for keyboard events using DOM key names ("Escape", "Enter", "a").
	Key string
}

// Listener handles dispatched event.
type Listener func(Event)

// ListenerID identifies registration, needed to remove listener later.
type ListenerID uint64

type registration struct {
	id  ListenerID
	typ string
	fn  Listener
}

// AddEventListener registers fn for events of type typ reaching n.
func (d *Document) AddEventListener(n *html.Node, typ string, fn Listener) ListenerID {
	d.next++
	d.listeners[n] = append(d.listeners[n], registration{id: d.next, typ: typ, fn: fn})
	return d.next
}

// RemoveEventListener removes registration. It works for nodes detached from
// the document too.
func (d *Document) RemoveEventListener(n *html.Node, typ string, id ListenerID) error {
	regs := d.listeners[n]
	for i, r := range regs {
		if r.id == id && r.typ == typ {
			regs = append(regs[:i], regs[i+1:]...)
			if len(regs) == 0 {
				delete(d.listeners, n)
			} else {
				d.listeners[n] = regs
			}
			return nil
		}
	}
	return fmt.Errorf("%s listener %d on <%s>: %w", typ, id, n.Data, ErrNoListener)
}

// ListenerCount returns number of listeners of type typ registered on n.
func (d *Document) ListenerCount(n *html.Node, typ string) int {
	count := 0
	for _, r := range d.listeners[n] {
		if r.typ == typ {
			count++
		}
	}
	return count
}

// TotalListeners returns number of listeners registered in the document.
func (d *Document) TotalListeners() int {
	count := 0
	for _, regs := range d.listeners {
		count += len(regs)
	}
	return count
}

// Dispatch delivers event to listeners on target and its ancestors, innermost
// first. Events targeting nodes outside of the document are dropped. Returns
// number of listeners invoked.
func (d *Document) Dispatch(ev Event) int {
	if ev.Target == nil {
		ev.Target = d.root
	}
	if !d.Contains(ev.Target) {
		return 0
	}

	// path is computed before any listener runs, listeners may change the tree
	var path []*html.Node
	for n := ev.Target; n != nil; n = n.Parent {
		path = append(path, n)
	}

	invoked := 0
	for _, n := range path {
		// copy, listener may remove itself
		regs := append([]registration(nil), d.listeners[n]...)
		for _, r := range regs {
			if r.typ != ev.Type || !d.registered(n, r.id) {
				continue
			}
			r.fn(ev)
			invoked++
		}
	}
	return invoked
}

func (d *Document) registered(n *html.Node, id ListenerID) bool {
	for _, r := range d.listeners[n] {
		if r.id == id {
			return true
		}
	}
	return false
}

package driver

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"tgrab/common"
	"tgrab/grab"
)

// TerminalPopup presents popup as text and takes answer from user input.
// Only one popup is open at a time, opening another replaces it.
type TerminalPopup struct {
	mu      sync.Mutex
	out     io.Writer
	req     *grab.PopupRequest
	resolve func(*grab.Choice)
}

func NewTerminalPopup(out io.Writer) *TerminalPopup {
	return &TerminalPopup{out: out}
}

func (p *TerminalPopup) Open(req grab.PopupRequest, resolve func(*grab.Choice)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.resolve != nil {
		// replaced popup is dismissed
		p.resolve(nil)
	}
	p.req, p.resolve = &req, resolve

	names := make([]string, 0, len(req.Formats))
	for _, f := range req.Formats {
		if f.ID() == req.Selected {
			names = append(names, "["+f.Name+"]")
		} else {
			names = append(names, f.Name)
		}
	}
	fmt.Fprintf(p.out, "%s\nFormat: %s\n%s [FORMAT] | %s [FORMAT] | cancel\n",
		req.Summary(), strings.Join(names, " "), common.PopupActionCopy, common.PopupActionDownload)
}

// Dismiss closes popup without answer.
func (p *TerminalPopup) Dismiss(id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.req == nil || p.req.ID != id {
		return
	}
	p.req, p.resolve = nil, nil
	fmt.Fprintln(p.out, "Popup closed.")
}

// IsOpen reports whether popup waits for answer.
func (p *TerminalPopup) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.req != nil
}

// Answer resolves open popup from user input line. Empty line or "cancel"
// dismisses popup. It returns false when there is no open popup.
func (p *TerminalPopup) Answer(line string) bool {
	p.mu.Lock()
	if p.req == nil {
		p.mu.Unlock()
		return false
	}
	req, resolve := *p.req, p.resolve
	p.req, p.resolve = nil, nil
	p.mu.Unlock()

	resolve(parseChoice(line, req.Selected))
	return true
}

// parseChoice understands "copy [FORMAT]" and "download [FORMAT]" with
// action possibly abbreviated to its first letter. Anything else is cancel.
func parseChoice(line, selected string) *grab.Choice {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}

	var action common.PopupAction
	switch fields[0] {
	case "c", common.PopupActionCopy.String():
		action = common.PopupActionCopy
	case "d", common.PopupActionDownload.String():
		action = common.PopupActionDownload
	default:
		return nil
	}

	format := selected
	if len(fields) > 1 {
		format = fields[1]
	}
	return &grab.Choice{Action: action, Format: format}
}

// ScriptedPopup answers every popup immediately with the same choice. Empty
// choice format means format preselected by the controller.
type ScriptedPopup struct {
	Choice *grab.Choice
	Opened []grab.PopupRequest
}

func (p *ScriptedPopup) Open(req grab.PopupRequest, resolve func(*grab.Choice)) {
	p.Opened = append(p.Opened, req)
	if p.Choice == nil {
		resolve(nil)
		return
	}
	choice := *p.Choice
	if len(choice.Format) == 0 {
		choice.Format = req.Selected
	}
	resolve(&choice)
}

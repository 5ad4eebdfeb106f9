// Package grab implements grab mode: it marks every table of a document,
// waits for user to pick one and exports picked table through collaborators.
package grab

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tgrab/common"
	"tgrab/dom"
	"tgrab/serialize"
	"tgrab/snapshot"
)

// Messages shown to the user.
const (
	MsgNoTables   = "No tables found on the page"
	MsgCopied     = "Copied!"
	MsgCopyFailed = "Failed: Cannot copy to clipboard"
	msgDownload   = "Failed: Cannot download %s"
)

// Export describes completed (or failed) export.
type Export struct {
	Snapshot *snapshot.Snapshot
	Format   serialize.Format
	Action   common.PopupAction
	Payload  string
	Err      error
}

// Options of the controller.
type Options struct {
	// Marker is attribute set on every table while grab mode is on.
	Marker string
	// CancelKey is DOM key name deactivating grab mode.
	CancelKey string
	// Style replaces default affordance stylesheet when not empty.
	Style string
	// Basename of downloaded files, extension is added by format.
	Basename string
	// DefaultFormat is preselected when there is no stored preference.
	DefaultFormat common.ExportFmt

	// Exported is called after every export attempt.
	Exported func(Export)
	// Deactivated is called when grab mode is turned off by cancel key.
	Deactivated func(error)
}

// Deactivate turns grab mode off. It is idempotent.
type Deactivate func() error

// Controller drives grab mode of a single document.
type Controller struct {
	doc     *dom.Document
	session *Session
	deps    Deps
	opts    Options
	loop    *Loop
	log     *zap.Logger
}

// New creates controller for document. All collaborators are required.
func New(doc *dom.Document, session *Session, deps Deps, opts Options, log *zap.Logger) (*Controller, error) {
	if doc == nil || session == nil {
		return nil, errors.New("document and session are required")
	}
	if err := deps.validate(); err != nil {
		return nil, fmt.Errorf("grab controller: %w", err)
	}
	if len(opts.Marker) == 0 {
		return nil, errors.New("grab controller: marker attribute is not set")
	}
	if len(opts.CancelKey) == 0 {
		return nil, errors.New("grab controller: cancel key is not set")
	}
	if len(opts.Style) == 0 {
		opts.Style = DefaultStyle(opts.Marker)
	}
	if len(opts.Basename) == 0 {
		opts.Basename = "table"
	}
	if !opts.DefaultFormat.IsValid() {
		opts.DefaultFormat = common.ExportFmtCsv
	}

	c := &Controller{
		doc:     doc,
		session: session,
		deps:    deps,
		opts:    opts,
		log:     log.Named("grab"),
	}
	c.loop = NewLoop(c.handle)
	return c, nil
}

// Loop returns message loop of the controller.
func (c *Controller) Loop() *Loop {
	return c.loop
}

// Activate turns grab mode on. When grab mode is already on (document has
// marked elements) it does nothing and returns nil teardown. When document
// has no tables user is notified and nil teardown is returned.
func (c *Controller) Activate(ctx context.Context) (Deactivate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := c.session
	if s.active || len(c.doc.WithAttr(c.opts.Marker)) > 0 {
		c.log.Debug("Grab mode is already active")
		return nil, nil
	}

	tables := c.doc.Tables()
	if len(tables) == 0 {
		c.deps.Notifier.Notify(MsgNoTables)
		return nil, nil
	}

	gen := s.begin(tables)

	style := c.doc.InjectStyle(c.opts.Style)
	s.style = style
	s.stack.Push(DisposeFunc(func() error {
		return c.doc.RemoveStyle(style)
	}))

	for i, table := range tables {
		dom.SetAttr(table, c.opts.Marker, "")
		s.stack.Push(DisposeFunc(func() error {
			dom.RemoveAttr(table, c.opts.Marker)
			if !c.doc.Contains(table) {
				c.log.Debug("Unmarked table was removed from the document", zap.Int("table", i))
			}
			return nil
		}))

		id := c.doc.AddEventListener(table, dom.EventClick, func(dom.Event) {
			c.loop.Post(TableClicked{Table: i, Gen: gen})
		})
		s.stack.Push(DisposeFunc(func() error {
			return c.doc.RemoveEventListener(table, dom.EventClick, id)
		}))
	}

	root := c.doc.Root()
	s.keyID = c.doc.AddEventListener(root, dom.EventKeyDown, func(ev dom.Event) {
		if ev.Key != c.opts.CancelKey || !s.keyArmed {
			return
		}
		s.keyArmed = false
		if err := c.doc.RemoveEventListener(root, dom.EventKeyDown, s.keyID); err != nil {
			c.log.Warn("Unable to remove cancel key listener", zap.Error(err))
		}
		c.loop.Post(CancelKeyPressed{Gen: gen})
	})
	s.keyArmed = true
	s.stack.Push(DisposeFunc(func() error {
		if !s.keyArmed {
			return nil
		}
		s.keyArmed = false
		return c.doc.RemoveEventListener(root, dom.EventKeyDown, s.keyID)
	}))

	c.log.Debug("Grab mode activated", zap.Int("tables", len(tables)), zap.Int("disposers", s.stack.Len()))
	return func() error { return c.teardown(gen) }, nil
}

// teardown runs at most once per activation.
func (c *Controller) teardown(gen uint64) error {
	s := c.session
	if !s.active || s.generation != gen {
		return nil
	}

	if d, ok := c.deps.Popup.(Dismisser); ok {
		for id := range s.pending {
			d.Dismiss(id)
		}
	}
	err := s.stack.DisposeAll()
	s.end()

	if err != nil {
		c.log.Warn("Grab mode deactivated with errors", zap.Error(err))
		return fmt.Errorf("deactivating grab mode: %w", err)
	}
	c.log.Debug("Grab mode deactivated")
	return nil
}

func (c *Controller) handle(m Message) {
	switch m := m.(type) {
	case TableClicked:
		c.onTableClicked(m)
	case PopupResolved:
		c.onPopupResolved(m)
	case CancelKeyPressed:
		if !c.session.active || m.Gen != c.session.generation {
			c.log.Debug("Ignoring stale cancel key", zap.Uint64("generation", m.Gen))
			return
		}
		err := c.teardown(m.Gen)
		if c.opts.Deactivated != nil {
			c.opts.Deactivated(err)
		}
	default:
		c.log.Warn("Unexpected message", zap.String("type", fmt.Sprintf("%T", m)))
	}
}

func (c *Controller) onTableClicked(m TableClicked) {
	s := c.session
	if !s.active || m.Gen != s.generation {
		c.log.Debug("Ignoring click, grab mode is off", zap.Int("table", m.Table), zap.Uint64("generation", m.Gen))
		return
	}
	if m.Table < 0 || m.Table >= len(s.tables) {
		c.log.Warn("Ignoring click on unknown table", zap.Int("table", m.Table), zap.Int("tables", len(s.tables)))
		return
	}

	snap := snapshot.Extract(s.tables[m.Table], c.opts.Marker)
	req := PopupRequest{
		ID:       uuid.New(),
		Rows:     len(snap.Rows),
		Formats:  serialize.Formats(),
		Selected: c.lastFormat(),
	}
	s.pending[req.ID] = snap

	c.log.Debug("Opening popup", zap.Int("table", m.Table), zap.Stringer("request", req.ID), zap.Int("rows", req.Rows), zap.String("selected", req.Selected))
	c.deps.Popup.Open(req, func(choice *Choice) {
		c.loop.Post(PopupResolved{Request: req.ID, Choice: choice})
	})
}

func (c *Controller) onPopupResolved(m PopupResolved) {
	s := c.session
	snap, ok := s.pending[m.Request]
	if !ok {
		c.log.Debug("Ignoring answer to abandoned popup", zap.Stringer("request", m.Request))
		return
	}
	delete(s.pending, m.Request)

	if m.Choice == nil {
		c.log.Debug("Popup dismissed", zap.Stringer("request", m.Request))
		return
	}

	format, ok := serialize.Lookup(m.Choice.Format)
	if !ok {
		c.log.Warn("Ignoring unknown export format", zap.String("format", m.Choice.Format))
		return
	}
	if !m.Choice.Action.IsValid() {
		c.log.Warn("Ignoring unknown popup action", zap.Stringer("action", m.Choice.Action))
		return
	}

	if err := c.deps.Preferences.SetLastFormat(format.ID()); err != nil {
		c.log.Warn("Unable to store last used format", zap.String("format", format.ID()), zap.Error(err))
	}

	payload := format.Transform(snap)

	var err error
	switch m.Choice.Action {
	case common.PopupActionCopy:
		if err = c.deps.Copier.Copy(payload); err != nil {
			c.log.Error("Unable to copy table", zap.String("format", format.ID()), zap.Error(err))
			c.deps.Notifier.Notify(MsgCopyFailed)
		} else {
			c.deps.Notifier.Notify(MsgCopied)
		}
	case common.PopupActionDownload:
		name := c.opts.Basename + format.Ext
		if err = c.deps.Downloader.Download(payload, c.opts.Basename, format); err != nil {
			c.log.Error("Unable to download table", zap.String("file", name), zap.Error(err))
			c.deps.Notifier.Notify(fmt.Sprintf(msgDownload, name))
		}
	}

	if c.opts.Exported != nil {
		c.opts.Exported(Export{
			Snapshot: snap,
			Format:   format,
			Action:   m.Choice.Action,
			Payload:  payload,
			Err:      err,
		})
	}
}

func (c *Controller) lastFormat() string {
	id, ok, err := c.deps.Preferences.LastFormat()
	if err != nil {
		c.log.Warn("Unable to read last used format", zap.Error(err))
	}
	if ok {
		if f, found := serialize.Lookup(id); found {
			return f.ID()
		}
		c.log.Debug("Stored format is not supported", zap.String("format", id))
	}
	return c.opts.DefaultFormat.String()
}

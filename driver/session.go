package driver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"tgrab/config"
	"tgrab/dom"
	"tgrab/grab"
	"tgrab/prefs"
	"tgrab/sink"
	"tgrab/state"
)

// sinks are user facing collaborators which differ between interactive and
// scripted sessions.
type sinks struct {
	notifier grab.Notifier
	popup    grab.Popup
	copier   grab.Copier
}

// pageSession is grab mode installed on a single page.
type pageSession struct {
	page     *Page
	host     string
	session  *grab.Session
	ctrl     *grab.Controller
	teardown grab.Deactivate

	prefs *prefs.Store
	dl    *sink.Downloader

	exports []grab.Export
	log     *zap.Logger
}

func newPageSession(env *state.LocalEnv, page *Page, dst string, s sinks) (*pageSession, error) {
	log := env.Log.Named("driver")

	host := PageHost(page, env.Origin)
	basename, err := ExpandBasename(env.Cfg.Grab.BasenameTemplate, page, host)
	if err != nil {
		log.Warn("Unable to expand basename template, using default", zap.Error(err))
		basename = ""
	}

	store, err := prefs.Open(env.Cfg.Preferences.Path, host, log)
	if err != nil {
		return nil, err
	}

	ps := &pageSession{
		page:    page,
		host:    host,
		session: grab.NewSession(),
		prefs:   store,
		dl:      sink.NewDownloader(dst, env.Overwrite || env.Cfg.Download.Overwrite, env.Cfg.Download.ReleaseDelay, log),
		log:     log,
	}

	opts := grab.Options{
		Marker:        env.Cfg.Grab.MarkerAttribute,
		CancelKey:     env.Cfg.Grab.CancelKey,
		Style:         string(env.Style),
		Basename:      basename,
		DefaultFormat: env.Cfg.Grab.DefaultFormat,
		Exported: func(e grab.Export) {
			ps.exports = append(ps.exports, e)
			storeExport(env, page, e)
		},
		Deactivated: func(err error) {
			ps.teardown = nil
			if err != nil {
				log.Warn("Grab mode was not cleanly deactivated", zap.Error(err))
			}
			s.notifier.Notify("Grab mode is off.")
		},
	}
	deps := grab.Deps{
		Notifier:    s.notifier,
		Popup:       s.popup,
		Preferences: store,
		Copier:      s.copier,
		Downloader:  ps.dl,
	}
	if ps.ctrl, err = grab.New(page.Doc, ps.session, deps, opts, env.Log); err != nil {
		return nil, multierr.Append(err, store.Close())
	}

	log.Debug("Page session prepared", zap.String("page", page.Path), zap.String("host", host), zap.String("basename", basename))
	return ps, nil
}

// activate turns grab mode on, it is a no-op when already active.
func (ps *pageSession) activate(ctx context.Context) error {
	teardown, err := ps.ctrl.Activate(ctx)
	if err != nil {
		return err
	}
	if teardown != nil {
		ps.teardown = teardown
	}
	return nil
}

// tables returns tables marked by grab mode, in document order.
func (ps *pageSession) tables() []*html.Node {
	return ps.page.Doc.Tables()
}

// click dispatches click on table number n (1 based) and handles resulting
// messages.
func (ps *pageSession) click(n int) error {
	tables := ps.tables()
	if n < 1 || n > len(tables) {
		return fmt.Errorf("table %d does not exist, page has %d table(s)", n, len(tables))
	}
	ps.page.Doc.Dispatch(dom.Event{Type: dom.EventClick, Target: tables[n-1]})
	ps.ctrl.Loop().Drain()
	return nil
}

// press dispatches key down to the document and handles resulting messages.
func (ps *pageSession) press(key string) {
	ps.page.Doc.Dispatch(dom.Event{Type: dom.EventKeyDown, Key: key})
	ps.ctrl.Loop().Drain()
}

func (ps *pageSession) drain() {
	ps.ctrl.Loop().Drain()
}

func (ps *pageSession) close() (err error) {
	if ps.teardown != nil {
		err = multierr.Append(err, ps.teardown())
		ps.teardown = nil
	}
	ps.dl.Wait()
	return multierr.Append(err, ps.prefs.Close())
}

// lastExport returns result of the most recent export.
func (ps *pageSession) lastExport() (grab.Export, error) {
	if len(ps.exports) == 0 {
		return grab.Export{}, errors.New("nothing was exported")
	}
	return ps.exports[len(ps.exports)-1], nil
}

func storeExport(env *state.LocalEnv, page *Page, e grab.Export) {
	if env.Rpt == nil {
		return
	}
	id := env.NextExportID()
	prefix := fmt.Sprintf("exports/%03d-%s", id, config.CleanFileName(page.Name))
	env.Rpt.StoreData(prefix+"-snapshot.txt", []byte(e.Snapshot.Dump()))
	env.Rpt.StoreData(prefix+"-"+e.Action.String()+e.Format.Ext, []byte(e.Payload))
}

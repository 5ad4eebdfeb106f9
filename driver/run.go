// Package driver connects grab mode to the command line: it loads pages,
// feeds user input into documents as events and wires sinks.
package driver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding/ianaindex"

	"tgrab/common"
	"tgrab/dom"
	"tgrab/grab"
	"tgrab/sink"
	"tgrab/snapshot"
	"tgrab/state"
)

// prepareEnv moves command line options and configured resources into
// program state.
func prepareEnv(cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) error {
	env.Origin = cmd.String("origin")
	env.Overwrite = cmd.Bool("overwrite")

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		enc, err := ianaindex.IANA.Encoding(cp)
		if err != nil || enc == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		} else {
			env.CodePage = enc
			n, _ := ianaindex.IANA.Name(enc)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	env.Style = nil
	if path := env.Cfg.Grab.StylePath; len(path) > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to read style css from %q: %w", path, err)
		}
		if err := dom.ValidateStyle(data); err != nil {
			return fmt.Errorf("unable to use style css from %q: %w", path, err)
		}
		env.Style = data
	}
	return nil
}

func sourceArg(cmd *cli.Command) (string, error) {
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return "", errors.New("no input source has been specified")
	}
	return filepath.Abs(src)
}

func destinationArg(cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) (dst string, err error) {
	dst = cmd.Args().Get(1)
	if len(dst) == 0 {
		dst = env.Cfg.Download.Destination
	}
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	return filepath.Abs(dst)
}

func selectPage(pages []*Page, n int, log *zap.Logger) (*Page, error) {
	if n < 1 || n > len(pages) {
		return nil, fmt.Errorf("page %d does not exist, source has %d page(s)", n, len(pages))
	}
	if len(pages) > 1 {
		log.Info("Source has several pages", zap.Int("pages", len(pages)), zap.String("selected", pages[n-1].Path))
	}
	return pages[n-1], nil
}

func loadPage(ctx context.Context, cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) (*Page, string, error) {
	src, err := sourceArg(cmd)
	if err != nil {
		return nil, "", err
	}
	dst, err := destinationArg(cmd, env, log)
	if err != nil {
		return nil, "", err
	}
	if err := prepareEnv(cmd, env, log); err != nil {
		return nil, "", err
	}
	pages, err := Load(ctx, src, env.CodePage, log)
	if err != nil {
		return nil, "", err
	}
	page, err := selectPage(pages, cmd.Int("page"), log)
	if err != nil {
		return nil, "", err
	}
	return page, dst, nil
}

// Grab runs interactive grab mode session on a page.
func Grab(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("driver")

	page, dst, err := loadPage(ctx, cmd, env, log)
	if err != nil {
		return err
	}

	log.Info("Interactive session starting", zap.String("page", page.Path), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Interactive session completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return interact(ctx, env, page, dst, os.Stdin, os.Stdout, sink.NewClipboard(log))
}

// Export clicks a single table without user interaction and exports it.
func Export(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("driver")

	page, dst, err := loadPage(ctx, cmd, env, log)
	if err != nil {
		return err
	}

	action := common.PopupActionDownload
	if cmd.Bool("copy") {
		action = common.PopupActionCopy
	}
	choice := grab.Choice{Action: action, Format: cmd.String("to")}

	log.Info("Export starting", zap.String("page", page.Path), zap.Int("table", cmd.Int("table")),
		zap.Stringer("action", action), zap.String("format", choice.Format))
	defer func(start time.Time) {
		log.Info("Export completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return export(ctx, env, page, dst, cmd.Int("table"), choice, sinks{
		notifier: sink.NewConsoleNotifier(os.Stdout, log),
		popup:    &ScriptedPopup{Choice: &choice},
		copier:   sink.NewClipboard(log),
	})
}

func export(ctx context.Context, env *state.LocalEnv, page *Page, dst string, table int, choice grab.Choice, s sinks) (err error) {
	if len(choice.Format) > 0 {
		if _, err := common.ParseExportFmt(choice.Format); err != nil {
			return fmt.Errorf("unknown export format %q, supported formats: %s", choice.Format, strings.Join(common.ExportFmtNames(), ", "))
		}
	}

	ps, err := newPageSession(env, page, dst, s)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ps.close(); cerr != nil {
			ps.log.Warn("Unable to close session cleanly", zap.Error(cerr))
		}
	}()

	if err := ps.activate(ctx); err != nil {
		return err
	}
	if ps.teardown == nil {
		return fmt.Errorf("no tables to export on page (%s)", page.Path)
	}
	if err := ps.click(table); err != nil {
		return err
	}

	e, err := ps.lastExport()
	if err != nil {
		return err
	}
	if e.Err != nil {
		return fmt.Errorf("unable to %s table: %w", e.Action, e.Err)
	}
	return nil
}

// interact reads commands from in, one per line, until input ends or user
// quits.
func interact(ctx context.Context, env *state.LocalEnv, page *Page, dst string, in io.Reader, out io.Writer, copier grab.Copier) error {
	log := env.Log.Named("driver")

	popup := NewTerminalPopup(out)
	ps, err := newPageSession(env, page, dst, sinks{
		notifier: sink.NewConsoleNotifier(out, log),
		popup:    popup,
		copier:   copier,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ps.close(); cerr != nil {
			log.Warn("Unable to close session cleanly", zap.Error(cerr))
		}
	}()

	if err := ps.activate(ctx); err != nil {
		return err
	}
	printTables(out, ps.tables(), env.Cfg.Grab.MarkerAttribute)
	printHelp(out, env.Cfg.Grab.CancelKey)

	lines, done := make(chan string), make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := command(ctx, ps, popup, line, out, env); quit {
				return nil
			}
		}
	}
}

// command handles single line of user input.
func command(ctx context.Context, ps *pageSession, popup *TerminalPopup, line string, out io.Writer, env *state.LocalEnv) (quit bool) {
	cancelKey := env.Cfg.Grab.CancelKey
	trimmed := strings.TrimSpace(line)

	// raw escape character or its name presses cancel key, with popup open
	// it dismisses popup first
	if strings.ContainsRune(line, '\x1b') || strings.EqualFold(trimmed, "esc") {
		popup.Answer("")
		ps.press(cancelKey)
		return false
	}

	fields := strings.Fields(trimmed)

	// key presses reach document even with popup open
	if len(fields) == 2 && strings.EqualFold(fields[0], "key") {
		ps.press(fields[1])
		return false
	}

	if popup.Answer(trimmed) {
		ps.drain()
		return false
	}

	if len(fields) == 0 {
		return false
	}
	switch strings.ToLower(fields[0]) {
	case "q", "quit", "exit":
		return true
	case "grab", "activate":
		if err := ps.activate(ctx); err != nil {
			fmt.Fprintf(out, "Unable to activate: %v\n", err)
		}
	case "list", "ls":
		printTables(out, ps.tables(), env.Cfg.Grab.MarkerAttribute)
	case "help", "?":
		printHelp(out, cancelKey)
	default:
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			fmt.Fprintf(out, "Unknown command %q, type help\n", fields[0])
			return false
		}
		if err := ps.click(n); err != nil {
			fmt.Fprintln(out, err)
		}
	}
	return false
}

func describe(t *html.Node, marker string) string {
	s := snapshot.Extract(t, marker)
	caption := "<none>"
	if s.HasCaption() {
		caption = strconv.Quote(*s.Caption)
	}
	return fmt.Sprintf("rows=%d caption=%s", len(s.Rows), caption)
}

func printTables(out io.Writer, tables []*html.Node, marker string) {
	for i, t := range tables {
		mark := ""
		if dom.HasAttr(t, marker) {
			mark = " *"
		}
		fmt.Fprintf(out, "[%d]%s %s\n", i+1, mark, describe(t, marker))
	}
}

func printHelp(out io.Writer, cancelKey string) {
	fmt.Fprintf(out, "Type table number to grab it, \"esc\" to press %s, \"key NAME\" to press any key, \"grab\" to activate again, \"list\" to show tables, \"quit\" to leave.\n", cancelKey)
}

// List prints pages found in source with their tables.
func List(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("driver")

	src, err := sourceArg(cmd)
	if err != nil {
		return err
	}
	if err := prepareEnv(cmd, env, log); err != nil {
		return err
	}
	pages, err := Load(ctx, src, env.CodePage, log)
	if err != nil {
		return err
	}
	return listPages(os.Stdout, pages, env.Cfg.Grab.MarkerAttribute, cmd.Bool("dump"))
}

func listPages(out io.Writer, pages []*Page, marker string, dump bool) error {
	for i, page := range pages {
		tables := page.Doc.Tables()
		if _, err := fmt.Fprintf(out, "%d: %s tables=%d\n", i+1, page.Path, len(tables)); err != nil {
			return err
		}
		for j, t := range tables {
			fmt.Fprintf(out, "  [%d] %s\n", j+1, describe(t, marker))
			if dump {
				fmt.Fprint(out, indent(snapshot.Extract(t, marker).Dump(), "    "))
			}
		}
	}
	return nil
}

func indent(text, prefix string) string {
	var b strings.Builder
	for line := range strings.Lines(text) {
		b.WriteString(prefix)
		b.WriteString(line)
	}
	return b.String()
}

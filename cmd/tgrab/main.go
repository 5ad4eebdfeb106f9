package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"tgrab/common"
	"tgrab/config"
	"tgrab/driver"
	"tgrab/misc"
	"tgrab/state"
)

const sourceHelp = `
SOURCE:
    HTML page(s) to work with, following forms are supported:
        path to a file: "[path_to_file]page.html"
        path to a directory: "[path_to_directory]directory" - all HTML files under directory and archives in it
        path to archive: "[path_to_archive]archive.zip[path_in_archive]" - HTML files in archive under path

    When source has several pages --page selects one of them (in natural
    order of their paths, see "list" command).
`

const destinationHelp = `
DESTINATION:
    directory to save downloaded tables to, if absent - download destination
    from configuration or current working directory
`

func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "page", Value: 1, Usage: "work with page `N` of the source"},
		&cli.StringFlag{Name: "origin", Usage: "page was loaded from `URL`, its host names downloads and keeps preferences"},
		&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "overwrite existing files when downloading"},
		&cli.StringFlag{Name: "force-zip-cp",
			Usage: "Force `ENCODING` for ALL non UTF-8 file names in processed archives (see IANA.org for character set names)"},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "grabs tables from HTML pages as csv, html or json",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          before,
		After:           after,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: commandNotFound,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:               "grab",
				Usage:              "Activates grab mode on a page and lets you pick tables interactively",
				OnUsageError:       usageErrorHandler,
				Action:             driver.Grab,
				Flags:              sessionFlags(),
				ArgsUsage:          "SOURCE [DESTINATION]",
				CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp + destinationHelp,
			},
			{
				Name:         "export",
				Usage:        "Grabs single table without interaction",
				OnUsageError: usageErrorHandler,
				Action:       driver.Export,
				Flags: append(sessionFlags(),
					&cli.IntFlag{Name: "table", Value: 1, Usage: "export table `N` of the page (in document order)"},
					&cli.StringFlag{Name: "to",
						Usage: "export `FORMAT` (supported formats: " + strings.Join(common.ExportFmtNames(), ", ") + "), if absent - last used one"},
					&cli.BoolFlag{Name: "copy", Usage: "copy table to clipboard instead of downloading it"},
				),
				ArgsUsage:          "SOURCE [DESTINATION]",
				CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp + destinationHelp,
			},
			{
				Name:         "list",
				Usage:        "Lists pages of the source and their tables",
				OnUsageError: usageErrorHandler,
				Action:       driver.List,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dump", Usage: "show structure of every table"},
					&cli.StringFlag{Name: "force-zip-cp",
						Usage: "Force `ENCODING` for ALL non UTF-8 file names in processed archives (see IANA.org for character set names)"},
				},
				ArgsUsage:          "SOURCE",
				CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp,
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: cli.CommandHelpTemplate + `
DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition
of default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`,
			},
		},
	}

	var err error
	// os.Exit skips deferred calls, it must stay the last one
	defer func() {
		stop()
		if err != nil {
			if !errLogged {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		data []byte
		kind = "actual"
	)
	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().Get(0)
	if len(fname) == 0 {
		env.Log.Info("Outputting configuration", zap.String("state", kind), zap.String("file", "STDOUT"))
		_, err = os.Stdout.Write(data)
	} else {
		env.Log.Info("Outputting configuration", zap.String("state", kind), zap.String("file", fname))
		err = os.WriteFile(fname, data, 0o644)
	}
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"tgrab/config"
	"tgrab/misc"
	"tgrab/state"
)

// before runs after command line is parsed: loads configuration, prepares
// debug report and logging.
func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)
	configFile := cmd.String("config")

	var err error
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}

	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(filepath.ToSlash(filepath.Join("config", filepath.Base(configFile))), data)
			}
		}
	}

	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started",
		zap.Strings("args", os.Args),
		zap.String("ver", misc.GetVersion()),
		zap.String("runtime", runtime.Version()),
		zap.String("hash", misc.GetGitHash()))
	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

// after closes logs and debug report. Errors cannot be logged anymore and
// are returned to be printed on stderr.
func after(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()

	if er := env.Rpt.Close(); er != nil {
		err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
	}

	if env.Cfg == nil || len(env.Cfg.Logging.FileLogger.Destination) == 0 {
		return err
	}
	// crash output was captured by logging setup, drop it when nothing crashed
	debug.SetCrashOutput(nil, debug.CrashOptions{})
	fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
	if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
		if er := os.Remove(fname); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
		}
	}
	return err
}

// errLogged is set when error returned by subcommand was already logged.
var errLogged bool

// exitErrHandler is called before After, while log is still available.
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	if env := state.EnvFromContext(ctx); env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errLogged = true
	}
}

// usageErrorHandler leaves reporting to exitErrHandler or main.
func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func commandNotFound(ctx context.Context, _ *cli.Command, name string) {
	if env := state.EnvFromContext(ctx); env.Log != nil {
		env.Log.Warn("Unknown command, nothing to do", zap.String("command", name))
		return
	}
	fmt.Fprintf(os.Stderr, "Unknown command %q, nothing to do\n", name)
}

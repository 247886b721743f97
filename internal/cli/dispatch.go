package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"rem/internal/commands"
	"rem/internal/config"
	"rem/internal/exitcode"
	"rem/internal/service"
	"rem/internal/task"
)

// ServiceFactory creates a Service from config.
// Used to inject the storage backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
	now      func() time.Time
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
		now:      time.Now,
	}
}

// SetClock replaces the clock used to resolve today (for testing).
func (d *Dispatcher) SetClock(now func() time.Time) {
	d.now = now
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list pending tasks
	if len(args) == 0 {
		return d.dispatch(ctx, "pending", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir, file, today string
	var quiet, debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&file, "file", "", "")
	fs.StringVar(&today, "today", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	positionalArgs, err := parseInterleaved(fs, args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagErrorMessage(err))
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.ConfigError
	}
	if file != "" {
		cfg.File = file
	}
	if today != "" {
		cfg.Today = today
	}
	cfg.Quiet = cfg.Quiet || quiet
	cfg.Debug = cfg.Debug || debug

	logger := newLogger(errOut, cfg.Debug)

	if !cmd.NeedsStore() {
		return cmd.Run(ctx, cfg, nil, task.Date{}, positionalArgs, out, errOut)
	}

	day, err := d.resolveToday(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.ConfigError
	}

	if d.factory == nil {
		fmt.Fprintln(errOut, "error: no storage backend configured")
		return exitcode.StoreError
	}
	svc, err := d.factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: store error: %s\n", err)
		return exitcode.StoreError
	}

	logger.Debug("loading store", "location", svc.Location(), "today", day.String())
	st, err := svc.Load(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: store error: %s\n", err)
		return exitcode.StoreError
	}

	changed := task.Advance(st, day)
	logger.Debug("maintenance pass", "tasks", st.Len(), "changed", changed)

	code := cmd.Run(ctx, cfg, st, day, positionalArgs, out, errOut)
	if code != exitcode.Success {
		logger.Debug("command failed, store not saved", "command", cmd.Name(), "code", code)
		return code
	}

	if err := svc.Save(ctx, st); err != nil {
		fmt.Fprintf(errOut, "error: store error: %s\n", err)
		return exitcode.StoreError
	}
	logger.Debug("store saved", "location", svc.Location(), "tasks", st.Len())
	return code
}

// resolveToday returns the pinned date from config, or the local date from
// the dispatcher clock.
func (d *Dispatcher) resolveToday(cfg *config.Config) (task.Date, error) {
	if cfg.Today == "" {
		return task.DateOf(d.now()), nil
	}
	day, err := task.ParseDate(cfg.Today)
	if err != nil {
		return task.Date{}, fmt.Errorf("invalid value for today: %s", cfg.Today)
	}
	return day, nil
}

// parseInterleaved parses flags that appear anywhere in args, so that
// "rem add stretch --daily" sets --daily. Everything after "--" is positional.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// flagErrorMessage rewrites flag package errors into the CLI's wording.
func flagErrorMessage(err error) string {
	errStr := err.Error()

	// Missing flag value
	if strings.Contains(errStr, "flag needs an argument") {
		flagPart := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "flag needs an argument: " + flagPart
	}

	// Unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		return "unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	}

	return errStr
}

// newLogger returns a text logger on w: Debug level when debug is set,
// otherwise Warn.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

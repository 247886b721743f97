// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"rem/internal/config"
	"rem/internal/task"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command works on the task store.
	// Commands like help, version and config return false.
	NeedsStore() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided.
	// st is the loaded store after the maintenance pass; nil if NeedsStore()
	// returns false. today is the resolved calendar date (zero without a store).
	// args contains positional arguments after flag parsing.
	// Returns exit code. The store is saved only on exitcode.Success.
	Run(ctx context.Context, cfg *config.Config, st *task.Store, today task.Date, args []string, out, errOut io.Writer) int
}

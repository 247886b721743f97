package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"rem/internal/config"
	"rem/internal/exitcode"
	"rem/internal/output"
	"rem/internal/task"
)

func init() {
	Register(&PendingCmd{})
}

// PendingCmd implements the pending command, which is also what `rem` with
// no arguments runs. Daily tasks are pending until done today.
type PendingCmd struct{}

func (c *PendingCmd) Name() string      { return "pending" }
func (c *PendingCmd) Aliases() []string { return nil }
func (c *PendingCmd) Synopsis() string  { return "List pending tasks (default)" }
func (c *PendingCmd) Usage() string     { return "rem [pending]" }
func (c *PendingCmd) NeedsStore() bool  { return true }

func (c *PendingCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PendingCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, today task.Date, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	entries := st.Pending(today)
	if len(entries) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no pending tasks")
		}
		return exitcode.Success
	}

	if err := output.FormatEntries(out, entries, today); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StoreError
	}
	return exitcode.Success
}

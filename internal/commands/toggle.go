package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"rem/internal/config"
	"rem/internal/exitcode"
	"rem/internal/output"
	"rem/internal/task"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
// For daily tasks the first toggle of a day marks it done, the second undoes it.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"do", "done"} }
func (c *ToggleCmd) Synopsis() string  { return "Toggle the done state of a task" }
func (c *ToggleCmd) Usage() string     { return "rem toggle <index>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, today task.Date, args []string, out, errOut io.Writer) int {
	pos, err := ParsePosition(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	t, err := st.At(pos)
	if err != nil {
		var idxErr *task.IndexError
		if errors.As(err, &idxErr) && idxErr.Max == 0 {
			fmt.Fprintln(errOut, "error: no tasks to toggle")
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := st.Toggle(pos, today); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		if err := output.FormatEntry(out, task.Entry{Position: pos, Task: t}, today); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.StoreError
		}
	}
	return exitcode.Success
}

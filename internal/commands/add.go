package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"rem/internal/config"
	"rem/internal/exitcode"
	"rem/internal/output"
	"rem/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	due   string
	daily bool
}

// SetDue sets the due date flag (for testing).
func (c *AddCmd) SetDue(due string) {
	c.due = due
}

// SetDaily sets the daily flag (for testing).
func (c *AddCmd) SetDaily(daily bool) {
	c.daily = daily
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"new"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "rem add [--due <YYYY-MM-DD>] [--daily] <content...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.due, "due", "", "")
	fs.BoolVar(&c.daily, "daily", false, "")
	fs.BoolVar(&c.daily, "d", false, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, today task.Date, args []string, out, errOut io.Writer) int {
	content := strings.Join(args, " ")
	if strings.TrimSpace(content) == "" {
		fmt.Fprintln(errOut, "error: content required")
		return exitcode.UserError
	}

	var due *string
	if c.due != "" {
		due = &c.due
	}

	t, err := task.New(content, due, c.daily)
	if err != nil {
		if errors.Is(err, task.ErrInvalidDate) {
			fmt.Fprintf(errOut, "error: %v (got %s)\n", task.ErrInvalidDate, c.due)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	pos := st.Add(t)

	if !cfg.Quiet {
		if err := output.FormatEntry(out, task.Entry{Position: pos, Task: t}, today); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.StoreError
		}
	}
	return exitcode.Success
}

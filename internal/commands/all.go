package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"rem/internal/config"
	"rem/internal/exitcode"
	"rem/internal/output"
	"rem/internal/service"
	"rem/internal/task"
)

func init() {
	Register(&AllCmd{})
}

// AllCmd implements the all command.
type AllCmd struct {
	format string
}

// SetFormat sets the output format (for testing).
func (c *AllCmd) SetFormat(format string) {
	c.format = format
}

func (c *AllCmd) Name() string      { return "all" }
func (c *AllCmd) Aliases() []string { return []string{"list"} }
func (c *AllCmd) Synopsis() string  { return "List all tasks" }
func (c *AllCmd) Usage() string     { return "rem all [--format text|json|yaml]" }
func (c *AllCmd) NeedsStore() bool  { return true }

func (c *AllCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", output.FormatText, "")
}

func (c *AllCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, today task.Date, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	switch c.format {
	case "", output.FormatText:
		if st.Len() == 0 {
			if !cfg.Quiet {
				fmt.Fprintln(out, "no tasks found")
			}
			return exitcode.Success
		}
		if err := output.FormatEntries(out, st.All(), today); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.StoreError
		}
	case output.FormatJSON, output.FormatYAML:
		if err := output.FormatDocument(out, service.FromStore(st), c.format); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.StoreError
		}
	default:
		fmt.Fprintf(errOut, "error: unknown format: %s\n", c.format)
		return exitcode.UserError
	}
	return exitcode.Success
}

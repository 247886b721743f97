package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"rem/internal/config"
	"rem/internal/exitcode"
	"rem/internal/task"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "rem help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, today task.Date, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  rem                                               List pending tasks
  rem pending [common flags]                        List pending tasks
  rem all [common flags] [--format text|json|yaml]  List all tasks
  rem add [common flags] [--due <YYYY-MM-DD>] [--daily] <content...>
  rem new [common flags] [--due <YYYY-MM-DD>] [--daily] <content...>
  rem toggle [common flags] <index>
  rem config [common flags]
  rem help
  rem version

Daily tasks (--daily) keep a streak. Toggling one marks it done for today;
toggling it again the same day undoes that.

Common flags:
  --config <dir>        Override config directory
  --file <path>         Override data file
  --today <YYYY-MM-DD>  Use this date instead of the system clock
  --quiet               Suppress informational output
  --debug               Print debug logs to stderr
`

package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"rem/internal/config"
	"rem/internal/exitcode"
	"rem/internal/task"
)

func init() {
	Register(&ConfigCmd{})
}

// ConfigCmd prints the effective configuration.
type ConfigCmd struct{}

func (c *ConfigCmd) Name() string      { return "config" }
func (c *ConfigCmd) Aliases() []string { return nil }
func (c *ConfigCmd) Synopsis() string  { return "Print the effective configuration" }
func (c *ConfigCmd) Usage() string     { return "rem config [common flags]" }
func (c *ConfigCmd) NeedsStore() bool  { return false }

func (c *ConfigCmd) RegisterFlags(fs *flag.FlagSet) {}

type configView struct {
	ConfigFile string `yaml:"config_file"`
	DataFile   string `yaml:"data_file"`
	Today      string `yaml:"today,omitempty"`
	Debug      bool   `yaml:"debug"`
	Quiet      bool   `yaml:"quiet"`
}

func (c *ConfigCmd) Run(ctx context.Context, cfg *config.Config, st *task.Store, today task.Date, args []string, out, errOut io.Writer) int {
	data, err := yaml.Marshal(configView{
		ConfigFile: cfg.ConfigPath(),
		DataFile:   cfg.DataPath(),
		Today:      cfg.Today,
		Debug:      cfg.Debug,
		Quiet:      cfg.Quiet,
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}
	if _, err := out.Write(data); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}

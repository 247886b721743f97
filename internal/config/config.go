// Package config resolves the configuration and data directories, the
// optional config file, and REM_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "rem"

	// DataFile is the task store filename.
	DataFile = "rem.json"

	// ConfigFile is the optional configuration filename.
	ConfigFile = "config.yaml"

	// EnvPrefix prefixes environment overrides (REM_DATA_DIR, REM_TODAY).
	EnvPrefix = "REM"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// DataDir holds the data file.
	DataDir string `mapstructure:"data_dir"`

	// File overrides the full data file path when set.
	File string `mapstructure:"file"`

	// Today pins the calendar date (YYYY-MM-DD) instead of the clock.
	Today string `mapstructure:"today"`

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config rooted at configDir, or at the default config
// directory when configDir is empty. Settings are layered: defaults, then
// config.yaml in the config directory, then REM_* environment variables.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("file", "")
	v.SetDefault("today", "")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetConfigFile(filepath.Join(dir, ConfigFile))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	cfg := &Config{Dir: dir}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	cfg.Dir = dir
	return cfg, nil
}

// isNotExist reports whether err means the config file is absent. With
// SetConfigFile viper surfaces the raw open error.
func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultDataDir returns the default data directory.
// Uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// ConfigPath returns the path to the optional config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataPath returns the path to the task store file.
func (c *Config) DataPath() string {
	if c.File != "" {
		return c.File
	}
	return filepath.Join(c.DataDir, DataFile)
}

// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid index, invalid date).
	UserError = 1

	// ConfigError indicates an unreadable config file or a bad pinned date.
	ConfigError = 2

	// StoreError indicates the data file could not be read, parsed or written.
	StoreError = 3
)

// Package service defines the storage interface the CLI loads and saves the
// task store through.
package service

import (
	"context"

	"rem/internal/task"
)

// Service loads and persists the task store.
// Commands never touch the data file directly.
type Service interface {
	// Load returns the persisted store. A missing or blank data file
	// yields an empty store.
	Load(ctx context.Context) (*task.Store, error)

	// Save replaces the persisted store with s.
	Save(ctx context.Context, s *task.Store) error

	// Location describes where the store lives, for diagnostics.
	Location() string
}

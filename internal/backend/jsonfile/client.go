// Package jsonfile implements the service.Service interface on a single
// JSON data file.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"rem/internal/config"
	"rem/internal/service"
	"rem/internal/task"
)

const (
	// dirMode is used when creating the data directory.
	dirMode = 0755

	// fileMode is used for the data file.
	fileMode = 0644
)

// Client implements service.Service on a JSON file.
type Client struct {
	path string
}

// New creates a client for the data file named by cfg.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return NewWithPath(cfg.DataPath()), nil
}

// NewWithPath creates a client for the data file at path.
func NewWithPath(path string) *Client {
	return &Client{path: path}
}

// Location returns the data file path.
func (c *Client) Location() string {
	return c.path
}

// Load reads the store. A missing or blank file is an empty store.
func (c *Client) Load(ctx context.Context) (*task.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return task.NewStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(c.path), err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return task.NewStore(), nil
	}

	var doc service.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(c.path), err)
	}

	s, err := doc.Store()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(c.path), err)
	}
	return s, nil
}

// Save writes the store, creating the data directory if needed. The file is
// written to a temporary sibling first and renamed into place.
func (c *Client) Save(ctx context.Context, s *task.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(service.FromStore(s), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(c.path), err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(c.path), err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(c.path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(c.path), err)
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(c.path), err)
	}
	return nil
}

// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"rem/internal/service"
	"rem/internal/task"
)

// FakeService is an in-memory implementation of service.Service for testing.
// Stores round-trip through service.Document so that tests see the same
// copy semantics as the file backend.
type FakeService struct {
	mu    sync.Mutex
	doc   service.Document
	saves int

	// Error injection for testing
	LoadErr error
	SaveErr error
}

// NewFakeService creates a FakeService holding tasks.
func NewFakeService(tasks ...task.Task) *FakeService {
	return &FakeService{doc: service.FromStore(task.NewStore(tasks...))}
}

// Load implements service.Service.
func (f *FakeService) Load(ctx context.Context) (*task.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	return f.doc.Store()
}

// Save implements service.Service.
func (f *FakeService) Save(ctx context.Context, s *task.Store) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.doc = service.FromStore(s)
	f.saves++
	return nil
}

// Location implements service.Service.
func (f *FakeService) Location() string {
	return "memory"
}

// Stored returns a fresh copy of the last saved store.
func (f *FakeService) Stored() *task.Store {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.doc.Store()
	if err != nil {
		panic(err)
	}
	return s
}

// Saves returns how many times Save succeeded.
func (f *FakeService) Saves() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"sync"

	"github.com/HendryAvila/listkeeper/internal/storage"
)

// FaultyGateway wraps a Gateway and fails selected operations on demand.
type FaultyGateway struct {
	storage.Gateway

	mu       sync.Mutex
	writeErr error
	readErr  error
	writes   int
}

// NewFaultyGateway wraps inner (an in-memory gateway when nil).
func NewFaultyGateway(inner storage.Gateway) *FaultyGateway {
	if inner == nil {
		inner = storage.NewMemoryGateway()
	}
	return &FaultyGateway{Gateway: inner}
}

// FailWrites makes every following Write return err (nil restores).
func (f *FaultyGateway) FailWrites(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErr = err
}

// FailReads makes every following Read return err (nil restores).
func (f *FaultyGateway) FailReads(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readErr = err
}

// Writes returns the number of Write calls attempted, failed ones included.
func (f *FaultyGateway) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

// Read fails with the configured error or delegates.
func (f *FaultyGateway) Read(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	err := f.readErr
	f.mu.Unlock()
	if err != nil {
		return "", err
	}
	return f.Gateway.Read(ctx, key)
}

// Write fails with the configured error or delegates.
func (f *FaultyGateway) Write(ctx context.Context, key, content string) error {
	f.mu.Lock()
	f.writes++
	err := f.writeErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Gateway.Write(ctx, key, content)
}

// Package api
// Author: momentics
//
// Mock/testing utilities for the core contracts; extendable for new interfaces.

package api

import "context"

// MockTask is a test and mock-friendly implementation of Task.
type MockTask struct {
	RunFunc      func(ctx context.Context)
	FinalizeFunc func()
}

func (m *MockTask) Run(ctx context.Context) {
	if m.RunFunc != nil {
		m.RunFunc(ctx)
	}
}

func (m *MockTask) Finalize() {
	if m.FinalizeFunc != nil {
		m.FinalizeFunc()
	}
}

// MockSpawner is a test and mock-friendly implementation of Spawner.
type MockSpawner struct {
	SpawnFunc func(name string, stackSize int, entry func()) error
}

func (m *MockSpawner) Spawn(name string, stackSize int, entry func()) error {
	return m.SpawnFunc(name, stackSize, entry)
}

// File: api/spawner.go
// Package api defines the execution-thread collaborator contracts.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Spawner starts a new execution thread running the given entry
// procedure. Thread creation is an environment concern: embedders may
// substitute their own spawner (attached runtime threads, pinned
// threads, test-controlled threads). stackSize is a hint; spawners
// backed by goroutines ignore it since goroutine stacks grow on
// demand.
type Spawner interface {
	Spawn(name string, stackSize int, entry func()) error
}

// ThreadHooks is invoked once per worker thread, before the
// fetch-execute loop starts and after it exits. Typical use is
// attaching to and detaching from an embedding runtime.
type ThreadHooks interface {
	OnThreadStart(worker string)
	OnThreadStop(worker string)
}

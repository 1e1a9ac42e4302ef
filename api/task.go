// File: api/task.go
// Package api defines the task contract consumed by the pool.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "context"

// Task is an opaque unit of work scheduled on a pool.
//
// The pool never inspects task content; it only sequences the two
// calls. Run is invoked at most once, Finalize exactly once, and Run
// (when it happens) always precedes Finalize. A task drained during
// shutdown gets Finalize without Run, so Finalize must be safe to
// call on a task that never ran.
type Task interface {
	// Run performs the unit of work. It may be long-running and may
	// submit further tasks to the same or another pool.
	Run(ctx context.Context)

	// Finalize releases the task's resources. It is the single
	// designated cleanup point and is called exactly once per task.
	Finalize()
}

// TaskFunc adapts a plain function to the Task contract with a no-op
// Finalize.
type TaskFunc func(ctx context.Context)

func (f TaskFunc) Run(ctx context.Context) { f(ctx) }
func (f TaskFunc) Finalize()               {}

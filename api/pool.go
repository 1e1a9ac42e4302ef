// File: api/pool.go
// Package api defines the worker pool contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Pool abstracts an elastic worker pool with admission-controlled
// concurrency. Tasks are dequeued in strict submission order; no
// completion order is guaranteed across workers.
type Pool interface {
	// AddTask appends a task to the queue. Legal in every lifecycle
	// state; once the pool is shutting down the task is only ever
	// finalized, never run.
	AddTask(task Task)

	// Start lets workers dequeue tasks.
	Start()

	// Stop parks workers without terminating them. Start/Stop may
	// alternate any number of times.
	Stop()

	// HasStarted reports whether workers may currently dequeue.
	HasStarted() bool

	// SetMaxActiveWorkers adjusts the soft admission cap. The cap is
	// consulted at the next dequeue decision and never preempts a
	// task already running. m above the roster size is a fatal
	// misuse.
	SetMaxActiveWorkers(m int)

	// Wait blocks until the pool is quiescent (all workers idle and
	// the queue empty) or shutting down. With doWork the caller first
	// drains eligible tasks itself.
	Wait(doWork bool)

	// GetTaskCount returns the number of queued, not yet dequeued
	// tasks.
	GetTaskCount() int

	GracefulShutdown
}

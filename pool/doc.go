// File: pool/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package pool implements an elastic worker pool with a strict FIFO
// task queue and admission-controlled concurrency.
//
// A ThreadPool owns a fixed worker roster created once per pool
// lifetime. Workers park on a shared condition instead of exiting, so
// the number of workers allowed to execute concurrently can be raised
// and lowered at runtime (SetMaxActiveWorkers) without destroying
// idle threads. The cap is soft: it is consulted at dequeue time only
// and never preempts a running task.
//
// Lifecycle: New spawns the roster (each worker announces itself on a
// creation barrier), Start/Stop gate dequeuing any number of times,
// Shutdown tears the roster down and finalizes whatever is still
// queued. Every task ever submitted gets Finalize exactly once.
package pool

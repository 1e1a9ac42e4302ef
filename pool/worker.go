// File: pool/worker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker wraps one execution thread bound to a pool. The entry
// procedure runs the start hook, announces itself on the creation
// barrier, then fetch-executes until the pool hands it nil.

package pool

import (
	"log"
	"runtime"
	"sync/atomic"

	"github.com/momentics/hioload-taskpool/api"
	"github.com/momentics/hioload-taskpool/internal/concurrency"
)

// Worker is one roster entry of a ThreadPool.
type Worker struct {
	pool *ThreadPool
	name string
	id   int

	tid  atomic.Int64 // OS thread id, valid once the loop is running
	done chan struct{}
}

// Name returns the worker's thread name.
func (w *Worker) Name() string { return w.name }

// entry is what the spawner executes on the new thread.
func (w *Worker) entry() {
	defer close(w.done)

	if h := w.pool.hooks; h != nil {
		h.OnThreadStart(w.name)
		defer h.OnThreadStop(w.name)
	}
	w.tid.Store(int64(concurrency.CurrentThreadID()))
	if cpus := w.pool.pinCPUs; len(cpus) != 0 {
		if err := concurrency.PinCurrentThread(cpus[w.id%len(cpus)]); err != nil {
			log.Printf("[pool] %s: pin: %v", w.name, err)
		}
	}

	// Announce the thread physically exists; pool construction
	// rendezvouses on this.
	w.pool.creation.Pass()

	for {
		task := w.pool.GetTask()
		if task == nil {
			return
		}
		w.pool.runTask(task)
	}
}

// SetPriority passes the OS scheduling priority through to the
// worker's thread. Tuning only; scheduling correctness never depends
// on it.
func (w *Worker) SetPriority(priority int) error {
	tid := int(w.tid.Load())
	if tid == 0 {
		return api.NewError(api.ErrCodeInternal, "worker thread not yet running").
			WithContext("worker", w.name)
	}
	return concurrency.SetThreadPriority(tid, priority)
}

// GetPriority reports the worker thread's OS scheduling priority.
func (w *Worker) GetPriority() (int, error) {
	tid := int(w.tid.Load())
	if tid == 0 {
		return 0, api.NewError(api.ErrCodeInternal, "worker thread not yet running").
			WithContext("worker", w.name)
	}
	return concurrency.GetThreadPriority(tid)
}

// goroutineSpawner is the default api.Spawner: a goroutine locked to
// its OS thread for the lifetime of the entry procedure, so the
// worker keeps one kernel thread and priority/pinning stay
// meaningful. The stack-size hint is ignored; goroutine stacks grow
// on demand.
type goroutineSpawner struct{}

func (goroutineSpawner) Spawn(name string, stackSize int, entry func()) error {
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		entry()
	}()
	return nil
}

// logTaskPanic keeps a panicking task from taking its worker down.
func logTaskPanic(name string, r any) {
	log.Printf("[pool] %s: recovered task panic: %v", name, r)
}

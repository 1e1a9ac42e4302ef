// File: pool/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ThreadPool: FIFO queue, fixed worker roster, admission-controlled
// dequeue, quiescence detection and drain-on-teardown. One mutex
// serializes queue and counters; "task available" and "pool idle"
// conditions hang off it. The creation barrier has its own lock.

package pool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-taskpool/api"
	"github.com/momentics/hioload-taskpool/barrier"
)

// ThreadPool schedules Tasks across a fixed roster of worker threads.
// Implements api.Pool.
type ThreadPool struct {
	name string

	mu       sync.Mutex
	taskCond *sync.Cond // signaled when a task may be dequeued
	idleCond *sync.Cond // broadcast when the pool becomes quiescent

	tasks        *taskQueue
	workers      []*Worker
	started      bool
	shuttingDown bool
	waitingCount int
	maxActive    int

	creation    *barrier.Barrier
	spawner     api.Spawner
	hooks       api.ThreadHooks
	createPeers bool
	stackSize   int
	pinCPUs     []int
	baseCtx     context.Context

	measureWait bool
	startTime   int64 // nanos, set by Start
	totalWait   int64 // nanos parked between tasks, guarded by mu

	submitted atomic.Int64
	executed  atomic.Int64
	finalized atomic.Int64
	panics    atomic.Int64
}

var _ api.Pool = (*ThreadPool)(nil)

// New constructs a pool and spawns its worker roster. Workers block
// until Start; call WaitForWorkersCreated to rendezvous with their
// physical creation. On a spawn failure the pool is returned alongside
// the error, partially constructed but safe to Shutdown.
func New(name string, numWorkers int, opts ...Option) (*ThreadPool, error) {
	if numWorkers <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "pool needs at least one worker").
			WithContext("workers", numWorkers)
	}
	p := &ThreadPool{
		name:      name,
		tasks:     newTaskQueue(),
		maxActive: numWorkers,
		creation:  barrier.New(0),
		spawner:   goroutineSpawner{},
		baseCtx:   context.Background(),
	}
	p.taskCond = sync.NewCond(&p.mu)
	p.idleCond = sync.NewCond(&p.mu)
	for _, opt := range opts {
		opt(p)
	}
	if err := p.createWorkers(numWorkers); err != nil {
		return p, err
	}
	return p, nil
}

// createWorkers arms the creation barrier to the target roster size
// and spawns that many workers. Creating the roster twice is a fatal
// misuse.
func (p *ThreadPool) createWorkers(numWorkers int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.workers) != 0 {
		panic("pool: workers already created")
	}
	p.shuttingDown = false
	p.creation.Init(numWorkers)

	for i := 0; i < numWorkers; i++ {
		w := &Worker{
			pool: p,
			name: fmt.Sprintf("%s worker thread %d", p.name, i),
			id:   i,
			done: make(chan struct{}),
		}
		if err := p.spawner.Spawn(w.name, p.stackSize, w.entry); err != nil {
			// Never-spawned workers will not Pass; settle the barrier
			// so creation waiters are not stranded.
			p.creation.Increment(-(numWorkers - i))
			return fmt.Errorf("%w: %s: %v", api.ErrSpawnFailed, w.name, err)
		}
		p.workers = append(p.workers, w)
	}
	return nil
}

// WaitForWorkersCreated blocks until every spawned worker has passed
// the creation barrier.
func (p *ThreadPool) WaitForWorkersCreated() {
	p.creation.IncrementAndWait(0)
}

// GetWorkers waits for the roster to physically exist and returns it.
func (p *ThreadPool) GetWorkers() []*Worker {
	p.WaitForWorkersCreated()
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Worker, len(p.workers))
	copy(out, p.workers)
	return out
}

// GetThreadCount returns the roster size.
func (p *ThreadPool) GetThreadCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// AddTask appends a task to the queue; if the pool is started and a
// worker is parked, one is woken. The queue is unbounded.
func (p *ThreadPool) AddTask(task api.Task) {
	p.mu.Lock()
	p.tasks.pushBack(task)
	if p.started && p.waitingCount != 0 {
		p.taskCond.Signal()
	}
	p.mu.Unlock()
	p.submitted.Add(1)
}

// Start lets workers dequeue and resets wait-time bookkeeping.
func (p *ThreadPool) Start() {
	p.mu.Lock()
	p.started = true
	p.taskCond.Broadcast()
	p.startTime = time.Now().UnixNano()
	p.totalWait = 0
	p.mu.Unlock()
}

// Stop parks workers without terminating them. Queued tasks stay
// queued until the next Start.
func (p *ThreadPool) Stop() {
	p.mu.Lock()
	p.started = false
	p.mu.Unlock()
}

// HasStarted reports whether dequeuing is currently enabled.
func (p *ThreadPool) HasStarted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// SetMaxActiveWorkers adjusts the soft admission cap. Takes effect at
// the very next dequeue decision; running tasks are never preempted.
func (p *ThreadPool) SetMaxActiveWorkers(m int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m > len(p.workers) {
		panic(fmt.Sprintf("pool: max active workers %d exceeds roster size %d", m, len(p.workers)))
	}
	p.maxActive = m
	// A raised cap may make parked workers eligible again.
	p.taskCond.Broadcast()
}

// GetTask blocks the calling worker until a task is eligible under
// the admission cap, or returns nil when the pool is shutting down.
func (p *ThreadPool) GetTask() api.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	for !p.shuttingDown {
		// <= because the caller itself counts as an active worker.
		active := len(p.workers) - p.waitingCount
		if active <= p.maxActive {
			if task := p.tryGetTaskLocked(); task != nil {
				return task
			}
		}

		p.waitingCount++
		if p.waitingCount == len(p.workers) && !p.hasOutstandingLocked() {
			// Quiescent: everyone parked and nothing dequeueable.
			p.idleCond.Broadcast()
		}
		var waitStart int64
		if p.measureWait {
			waitStart = time.Now().UnixNano()
		}
		p.taskCond.Wait()
		if p.measureWait {
			start := waitStart
			if p.startTime > start {
				start = p.startTime
			}
			p.totalWait += time.Now().UnixNano() - start
		}
		p.waitingCount--
	}
	return nil
}

// TryGetTask is the non-blocking form of GetTask.
func (p *ThreadPool) TryGetTask() api.Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tryGetTaskLocked()
}

func (p *ThreadPool) tryGetTaskLocked() api.Task {
	if !p.hasOutstandingLocked() {
		return nil
	}
	return p.tasks.popFront()
}

// hasOutstandingLocked reports whether a task could be dequeued right
// now: the queue only counts while the pool is started.
func (p *ThreadPool) hasOutstandingLocked() bool {
	return p.started && !p.tasks.empty()
}

// Wait blocks until quiescence (every worker parked, queue empty) or
// shutdown. With doWork the caller first drains eligible tasks
// itself, which is incompatible with peer-creating pools.
func (p *ThreadPool) Wait(doWork bool) {
	if doWork {
		if p.createPeers {
			panic("pool: self-service draining on a peer-creating pool")
		}
		for {
			task := p.TryGetTask()
			if task == nil {
				break
			}
			p.runTask(task)
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for !p.shuttingDown && (p.waitingCount != len(p.workers) || p.hasOutstandingLocked()) {
		p.idleCond.Wait()
	}
}

// IsActive reports whether any worker is busy or any dequeueable task
// is queued.
func (p *ThreadPool) IsActive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.waitingCount != len(p.workers) || p.hasOutstandingLocked()
}

// GetTaskCount returns the number of queued tasks.
func (p *ThreadPool) GetTaskCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tasks.size()
}

// RemoveAllTasks drains the queue, finalizing every task outside the
// lock without running it.
func (p *ThreadPool) RemoveAllTasks() {
	for {
		p.mu.Lock()
		task := p.tasks.popFront()
		p.mu.Unlock()
		if task == nil {
			return
		}
		p.finalizeTask(task)
	}
}

// DeleteThreads transitions the pool to shutting-down, releases every
// blocked worker and Wait caller, and joins the roster. Terminal: the
// pool is not restartable afterwards.
func (p *ThreadPool) DeleteThreads() {
	p.mu.Lock()
	p.shuttingDown = true
	p.taskCond.Broadcast()
	p.idleCond.Broadcast()
	workers := make([]*Worker, len(p.workers))
	copy(workers, p.workers)
	p.mu.Unlock()

	for _, w := range workers {
		<-w.done
	}
}

// Shutdown implements api.GracefulShutdown: joins the roster, then
// finalizes everything still queued so no task is ever leaked.
// Idempotent.
func (p *ThreadPool) Shutdown() error {
	p.DeleteThreads()
	p.RemoveAllTasks()
	return nil
}

// Stats returns basic pool metrics.
func (p *ThreadPool) Stats() map[string]int64 {
	p.mu.Lock()
	workers := int64(len(p.workers))
	waiting := int64(p.waitingCount)
	queued := int64(p.tasks.size())
	maxActive := int64(p.maxActive)
	totalWait := p.totalWait
	p.mu.Unlock()
	return map[string]int64{
		"workers":         workers,
		"waiting_workers": waiting,
		"queued_tasks":    queued,
		"max_active":      maxActive,
		"submitted_tasks": p.submitted.Load(),
		"executed_tasks":  p.executed.Load(),
		"finalized_tasks": p.finalized.Load(),
		"task_panics":     p.panics.Load(),
		"total_wait_ns":   totalWait,
	}
}

// Name returns the pool name.
func (p *ThreadPool) Name() string { return p.name }

// SetPriority passes an OS scheduling priority through to every
// worker thread; the first error is returned.
func (p *ThreadPool) SetPriority(priority int) error {
	var firstErr error
	for _, w := range p.GetWorkers() {
		if err := w.SetPriority(priority); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// CheckPriority verifies every worker thread runs at the expected
// priority.
func (p *ThreadPool) CheckPriority(priority int) error {
	for _, w := range p.GetWorkers() {
		got, err := w.GetPriority()
		if err != nil {
			return err
		}
		if got != priority {
			return api.NewError(api.ErrCodeInternal, "worker priority mismatch").
				WithContext("worker", w.name).
				WithContext("want", priority).
				WithContext("got", got)
		}
	}
	return nil
}

// runTask executes one task, guaranteeing Finalize exactly once even
// when Run panics.
func (p *ThreadPool) runTask(task api.Task) {
	defer p.finalizeTask(task)
	defer func() {
		if r := recover(); r != nil {
			p.panics.Add(1)
			logTaskPanic(p.name, r)
		}
	}()
	p.executed.Add(1)
	task.Run(p.baseCtx)
}

func (p *ThreadPool) finalizeTask(task api.Task) {
	task.Finalize()
	p.finalized.Add(1)
}

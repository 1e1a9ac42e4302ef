// File: pool/queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// FIFO task queue on an eapache ring. Always accessed with the pool
// lock held, so it carries no synchronization of its own.

package pool

import (
	"github.com/eapache/queue"

	"github.com/momentics/hioload-taskpool/api"
)

// taskQueue is an unbounded FIFO of pending tasks. Insertion order is
// dequeue order.
type taskQueue struct {
	ring *queue.Queue
}

func newTaskQueue() *taskQueue {
	return &taskQueue{ring: queue.New()}
}

func (q *taskQueue) pushBack(t api.Task) {
	q.ring.Add(t)
}

// popFront removes and returns the oldest task, or nil when empty.
func (q *taskQueue) popFront() api.Task {
	if q.ring.Length() == 0 {
		return nil
	}
	return q.ring.Remove().(api.Task)
}

func (q *taskQueue) empty() bool {
	return q.ring.Length() == 0
}

func (q *taskQueue) size() int {
	return q.ring.Length()
}

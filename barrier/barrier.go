// File: barrier/barrier.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Counting rendezvous with signed counter and wake-on-zero semantics.
// The wake channel plays the role of a condition-variable broadcast:
// reaching zero closes the current round's channel and immediately
// arms a fresh one, so late waiters on a re-incremented counter block
// on the next round.

package barrier

import (
	"sync"
	"time"
)

// Barrier is a reusable N-party rendezvous generalized to arbitrary
// signed contributions. A Barrier armed to N releases all waiters
// once N net decrements have been applied.
type Barrier struct {
	mu      sync.Mutex
	count   int
	waiters int
	round   chan struct{}
}

// New creates a barrier armed to count.
func New(count int) *Barrier {
	b := &Barrier{}
	b.resetLocked(count)
	return b
}

// Init re-arms the barrier for another round. No goroutine may be
// blocked on the barrier when Init is called; violating that is a
// programming error and panics.
func (b *Barrier) Init(count int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.waiters != 0 {
		panic("barrier: Init while goroutines are still blocked")
	}
	b.resetLocked(count)
}

func (b *Barrier) resetLocked(count int) {
	b.count = count
	b.round = make(chan struct{})
}

// adjustLocked applies delta and wakes all parties when the counter
// lands on exactly zero.
func (b *Barrier) adjustLocked(delta int) {
	b.count += delta
	if b.count == 0 {
		close(b.round)
		b.round = make(chan struct{})
	}
}

// Increment adjusts the counter without blocking.
func (b *Barrier) Increment(delta int) {
	b.mu.Lock()
	b.adjustLocked(delta)
	b.mu.Unlock()
}

// Pass is the fire-and-forget contribution: a non-blocking decrement
// by one.
func (b *Barrier) Pass() {
	b.Increment(-1)
}

// Wait contributes a decrement of one and blocks until the counter
// reaches zero or below.
func (b *Barrier) Wait() {
	b.IncrementAndWait(-1)
}

// IncrementAndWait adjusts the counter and blocks the caller while it
// remains positive. Returns once the counter is zero or negative.
func (b *Barrier) IncrementAndWait(delta int) {
	b.mu.Lock()
	b.adjustLocked(delta)
	for b.count > 0 {
		ch := b.round
		b.waiters++
		b.mu.Unlock()
		<-ch
		b.mu.Lock()
		b.waiters--
	}
	b.mu.Unlock()
}

// IncrementAndWaitTimeout behaves like IncrementAndWait but gives up
// after timeout, reporting true when the wait timed out. The applied
// delta is not retracted on timeout; re-arm with Init once no party
// is blocked.
func (b *Barrier) IncrementAndWaitTimeout(delta int, timeout time.Duration) (timedOut bool) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	b.mu.Lock()
	b.adjustLocked(delta)
	for b.count > 0 {
		ch := b.round
		b.waiters++
		b.mu.Unlock()
		select {
		case <-ch:
			b.mu.Lock()
			b.waiters--
		case <-deadline.C:
			b.mu.Lock()
			b.waiters--
			b.mu.Unlock()
			return true
		}
	}
	b.mu.Unlock()
	return false
}

// Count returns the current counter value.
func (b *Barrier) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

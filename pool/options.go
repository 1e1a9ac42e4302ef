// File: pool/options.go
// Package pool defines functional options for ThreadPool construction.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"context"

	"github.com/momentics/hioload-taskpool/api"
)

// Option customizes pool initialization.
type Option func(*ThreadPool)

// WithSpawner substitutes the environment-provided thread spawner.
// The default runs each worker on a goroutine locked to its OS thread.
func WithSpawner(s api.Spawner) Option {
	return func(p *ThreadPool) {
		p.spawner = s
	}
}

// WithThreadHooks installs per-worker start/stop callbacks, invoked
// around the fetch-execute loop (e.g. embedding-runtime attach).
func WithThreadHooks(h api.ThreadHooks) Option {
	return func(p *ThreadPool) {
		p.hooks = h
	}
}

// WithCreatePeers marks worker threads as having environment-level
// peer objects. Pools created with peers refuse self-service draining
// in Wait.
func WithCreatePeers(createPeers bool) Option {
	return func(p *ThreadPool) {
		p.createPeers = createPeers
	}
}

// WithWorkerStackSize sets the stack-size hint handed to the spawner.
// The default goroutine spawner ignores it.
func WithWorkerStackSize(size int) Option {
	return func(p *ThreadPool) {
		p.stackSize = size
	}
}

// WithWorkerPinning binds each worker thread to one of the given
// logical CPUs, round-robin by worker index. Requires a spawner that
// keeps workers on their OS thread; unsupported platforms log and
// continue unpinned.
func WithWorkerPinning(cpus []int) Option {
	return func(p *ThreadPool) {
		p.pinCPUs = cpus
	}
}

// WithBaseContext sets the context passed to every task Run.
func WithBaseContext(ctx context.Context) Option {
	return func(p *ThreadPool) {
		p.baseCtx = ctx
	}
}

// WithWaitTimeMeasurement enables bookkeeping of time workers spend
// parked between tasks, exposed via Stats as total_wait_ns.
func WithWaitTimeMeasurement(enabled bool) Option {
	return func(p *ThreadPool) {
		p.measureWait = enabled
	}
}

// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"context"
	"sync/atomic"
)

// Task is a counting stub task for tests. Run and Finalize
// invocations are tallied atomically; an optional RunFn supplies
// behavior.
type Task struct {
	RunFn func(ctx context.Context)

	runs      atomic.Int64
	finalizes atomic.Int64
}

func (t *Task) Run(ctx context.Context) {
	t.runs.Add(1)
	if t.RunFn != nil {
		t.RunFn(ctx)
	}
}

func (t *Task) Finalize() {
	t.finalizes.Add(1)
}

func (t *Task) Runs() int64      { return t.runs.Load() }
func (t *Task) Finalizes() int64 { return t.finalizes.Load() }

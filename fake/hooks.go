// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import "sync"

// Hooks records thread start/stop callbacks, standing in for an
// embedding runtime's attach/detach.
type Hooks struct {
	mu      sync.Mutex
	started []string
	stopped []string
}

func (h *Hooks) OnThreadStart(worker string) {
	h.mu.Lock()
	h.started = append(h.started, worker)
	h.mu.Unlock()
}

func (h *Hooks) OnThreadStop(worker string) {
	h.mu.Lock()
	h.stopped = append(h.stopped, worker)
	h.mu.Unlock()
}

func (h *Hooks) Started() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.started...)
}

func (h *Hooks) Stopped() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.stopped...)
}

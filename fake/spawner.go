// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"fmt"
	"sync"
)

// Spawner is a goroutine-backed api.Spawner that records every spawn
// and can be told to fail from the N-th spawn on, for exercising
// partially constructed pools.
type Spawner struct {
	FailFrom int // fail spawns with index >= FailFrom; 0 disables (use <0 to fail all)

	mu      sync.Mutex
	spawned []string
}

func (s *Spawner) Spawn(name string, stackSize int, entry func()) error {
	s.mu.Lock()
	n := len(s.spawned)
	fail := s.FailFrom != 0 && n >= s.FailFrom
	if !fail {
		s.spawned = append(s.spawned, name)
	}
	s.mu.Unlock()
	if fail {
		return fmt.Errorf("fake spawner: refusing spawn %d (%s)", n, name)
	}
	go entry()
	return nil
}

// Spawned returns the names of successfully spawned threads.
func (s *Spawner) Spawned() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.spawned))
	copy(out, s.spawned)
	return out
}

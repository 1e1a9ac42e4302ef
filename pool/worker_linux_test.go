//go:build linux

// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

// worker_linux_test.go — OS priority pass-throughs against live workers.
package pool

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestWorker_PriorityPassThrough(t *testing.T) {
	p, err := New("prio", 2)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Shutdown()

	workers := p.GetWorkers()
	if len(workers) != 2 {
		t.Fatalf("roster size = %d, want 2", len(workers))
	}

	prio, err := workers[0].GetPriority()
	if err != nil {
		t.Fatalf("GetPriority: %v", err)
	}

	// Re-applying the observed niceness is always permitted.
	if err := p.SetPriority(prio); err != nil {
		t.Fatalf("SetPriority(%d): %v", prio, err)
	}
	if err := p.CheckPriority(prio); err != nil {
		t.Fatalf("CheckPriority(%d): %v", prio, err)
	}
}

func TestWorker_CPUPinning(t *testing.T) {
	// Pin to a CPU the process is actually allowed to run on.
	var allowed unix.CPUSet
	if err := unix.SchedGetaffinity(0, &allowed); err != nil {
		t.Fatalf("SchedGetaffinity: %v", err)
	}
	cpu := -1
	for i := 0; i < len(allowed)*64; i++ {
		if allowed.IsSet(i) {
			cpu = i
			break
		}
	}
	if cpu < 0 {
		t.Fatal("empty affinity mask")
	}

	p, err := New("pinned", 2, WithWorkerPinning([]int{cpu}))
	if err != nil {
		t.Fatal(err)
	}
	defer p.Shutdown()

	for _, w := range p.GetWorkers() {
		var set unix.CPUSet
		if err := unix.SchedGetaffinity(int(w.tid.Load()), &set); err != nil {
			t.Fatalf("%s: SchedGetaffinity: %v", w.Name(), err)
		}
		if set.Count() != 1 || !set.IsSet(cpu) {
			t.Errorf("%s: affinity count=%d set(%d)=%v, want pinned to %d",
				w.Name(), set.Count(), cpu, set.IsSet(cpu), cpu)
		}
	}
}

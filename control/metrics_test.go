// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

// metrics_test.go — Prometheus collector over a live pool.
package control

import (
	"testing"
	"time"

	"github.com/momentics/hioload-taskpool/fake"
	"github.com/momentics/hioload-taskpool/pool"
)

func TestPoolCollector_Collect(t *testing.T) {
	p, err := pool.New("metrics", 2)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Shutdown()

	for i := 0; i < 3; i++ {
		p.AddTask(&fake.Task{})
	}
	p.Start()
	done := make(chan struct{})
	go func() {
		p.Wait(false)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Timeout waiting for tasks")
	}

	reg, wrapped := NewRegistry("metrics", "test-instance")
	if err := wrapped.Register(NewPoolCollector(p)); err != nil {
		t.Fatal(err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	byName := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetGauge() != nil:
				byName[mf.GetName()] = m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				byName[mf.GetName()] = m.GetCounter().GetValue()
			}
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "pool" && lp.GetValue() != "metrics" {
					t.Errorf("pool label = %q", lp.GetValue())
				}
			}
		}
	}

	if byName["taskpool_workers"] != 2 {
		t.Errorf("taskpool_workers = %v, want 2", byName["taskpool_workers"])
	}
	if byName["taskpool_executed_tasks_total"] != 3 {
		t.Errorf("taskpool_executed_tasks_total = %v, want 3", byName["taskpool_executed_tasks_total"])
	}
	if byName["taskpool_finalized_tasks_total"] != 3 {
		t.Errorf("taskpool_finalized_tasks_total = %v, want 3", byName["taskpool_finalized_tasks_total"])
	}
	if byName["taskpool_queued_tasks"] != 0 {
		t.Errorf("taskpool_queued_tasks = %v, want 0", byName["taskpool_queued_tasks"])
	}
}

func TestDebugProbes_PoolProbes(t *testing.T) {
	p, err := pool.New("probes", 2)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Shutdown()

	dp := NewDebugProbes()
	dp.RegisterPoolProbes(p)
	dp.RegisterRuntimeProbes()

	state := dp.DumpState()
	if state["pool.workers"] != 2 {
		t.Errorf("pool.workers probe = %v, want 2", state["pool.workers"])
	}
	if state["pool.started"] != false {
		t.Errorf("pool.started probe = %v, want false", state["pool.started"])
	}
	if _, ok := state["runtime.cpus"]; !ok {
		t.Error("runtime.cpus probe missing")
	}
	if _, ok := state["pool.stats"]; !ok {
		t.Error("pool.stats probe missing")
	}
}

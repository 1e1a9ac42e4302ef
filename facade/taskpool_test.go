// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

// taskpool_test.go — Facade lifecycle, control plane and hot-reload.
package facade

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/hioload-taskpool/api"
)

func TestTaskPool_Lifecycle(t *testing.T) {
	tp, err := New(&Config{Name: "facade", NumWorkers: 2, EnableMetrics: true, EnableDebug: true})
	if err != nil {
		t.Fatal(err)
	}

	var counter int64
	for i := 0; i < 6; i++ {
		tp.Submit(api.TaskFunc(func(ctx context.Context) {
			atomic.AddInt64(&counter, 1)
		}))
	}
	tp.Start()

	done := make(chan struct{})
	go func() {
		tp.Wait(false)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Timeout waiting for quiescence")
	}
	if got := atomic.LoadInt64(&counter); got != 6 {
		t.Fatalf("executed %d tasks, want 6", got)
	}

	if err := tp.Shutdown(); err != nil {
		t.Fatal(err)
	}
	// Idempotent.
	if err := tp.Shutdown(); err != nil {
		t.Fatal(err)
	}
}

func TestTaskPool_MetricsRegistry(t *testing.T) {
	tp, err := New(&Config{Name: "metrics", NumWorkers: 2, EnableMetrics: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tp.Shutdown()

	if tp.Registry() == nil {
		t.Fatal("metrics enabled but registry is nil")
	}
	families, err := tp.Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	if len(families) == 0 {
		t.Fatal("no metric families gathered")
	}

	if tp.InstanceID() == "" {
		t.Fatal("empty instance id")
	}
}

func TestTaskPool_HotReloadAdmissionCap(t *testing.T) {
	tp, err := New(&Config{Name: "reload", NumWorkers: 4})
	if err != nil {
		t.Fatal(err)
	}
	defer tp.Shutdown()

	if err := tp.SetConfig(map[string]any{"pool.max_active_workers": 2}); err != nil {
		t.Fatal(err)
	}
	if got := tp.Stats()["max_active"]; got != int64(2) {
		t.Fatalf("max_active = %v after reload, want 2", got)
	}

	// Out-of-range values are ignored rather than applied.
	if err := tp.SetConfig(map[string]any{"pool.max_active_workers": 99}); err != nil {
		t.Fatal(err)
	}
	if got := tp.Stats()["max_active"]; got != int64(2) {
		t.Fatalf("max_active = %v after bad reload, want 2", got)
	}
}

func TestTaskPool_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.yaml")
	doc := "pool:\n  name: configured\n  workers: 3\n  max_active_workers: 1\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	tp, err := New(&Config{Name: "ignored", NumWorkers: 8, ConfigFile: path})
	if err != nil {
		t.Fatal(err)
	}
	defer tp.Shutdown()

	if got := tp.Pool().Name(); got != "configured" {
		t.Errorf("pool name = %q, want from file", got)
	}
	if got := tp.Pool().GetThreadCount(); got != 3 {
		t.Errorf("roster size = %d, want 3", got)
	}
	if got := tp.Stats()["max_active"]; got != int64(1) {
		t.Errorf("max_active = %v, want 1", got)
	}
}

func TestTaskPool_ConfigFileCapAboveRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.yaml")
	doc := "pool:\n  workers: 2\n  max_active_workers: 99\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	// A misconfigured cap must surface as a constructor error, not a
	// panic out of the pool.
	tp, err := New(&Config{Name: "badcap", ConfigFile: path})
	if err == nil {
		tp.Shutdown()
		t.Fatal("cap above roster size accepted")
	}
	if !errors.Is(err, api.ErrInvalidArgument) {
		t.Fatalf("error %v does not wrap ErrInvalidArgument", err)
	}
}

func TestTaskPool_DebugProbes(t *testing.T) {
	tp, err := New(&Config{Name: "debug", NumWorkers: 2, EnableDebug: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tp.Shutdown()

	tp.RegisterDebugProbe("custom", func() any { return "ok" })
	state := tp.DumpDebugState()
	if state["custom"] != "ok" {
		t.Errorf("custom probe = %v", state["custom"])
	}
	if state["pool.workers"] != 2 {
		t.Errorf("pool.workers probe = %v, want 2", state["pool.workers"])
	}
}

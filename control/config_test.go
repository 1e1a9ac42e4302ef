// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

// config_test.go — Config store snapshot, typed getters, YAML merge
// and reload dispatch.
package control

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigStore_SetAndSnapshot(t *testing.T) {
	cs := NewConfigStore()
	cs.SetConfig(map[string]any{"a": 1, "b": "two"})

	snap := cs.GetSnapshot()
	if snap["a"] != 1 || snap["b"] != "two" {
		t.Fatalf("snapshot = %v", snap)
	}

	// Snapshot is a copy, not a view.
	snap["a"] = 99
	if got := cs.GetInt("a", -1); got != 1 {
		t.Fatalf("a = %d after mutating snapshot, want 1", got)
	}
}

func TestConfigStore_TypedGetters(t *testing.T) {
	cs := NewConfigStore()
	cs.SetConfig(map[string]any{
		"workers": 8,
		"ratio":   2.0,
		"name":    "jit pool",
		"peers":   true,
	})

	if got := cs.GetInt("workers", 0); got != 8 {
		t.Errorf("GetInt(workers) = %d", got)
	}
	if got := cs.GetInt("ratio", 0); got != 2 {
		t.Errorf("GetInt(ratio) = %d", got)
	}
	if got := cs.GetInt("missing", 42); got != 42 {
		t.Errorf("GetInt(missing) = %d", got)
	}
	if got := cs.GetString("name", ""); got != "jit pool" {
		t.Errorf("GetString(name) = %q", got)
	}
	if !cs.GetBool("peers", false) {
		t.Error("GetBool(peers) = false")
	}
}

func TestConfigStore_ReloadListener(t *testing.T) {
	cs := NewConfigStore()
	calls := 0
	cs.OnReload(func() { calls++ })

	cs.SetConfig(map[string]any{"x": 1})
	cs.SetConfig(map[string]any{"x": 2})
	if calls != 2 {
		t.Fatalf("listener called %d times, want 2", calls)
	}
}

func TestConfigStore_ListenerReadsStore(t *testing.T) {
	cs := NewConfigStore()
	observed := -1
	cs.OnReload(func() {
		// Listeners run off a copied slice, outside the store lock,
		// so reading back the merged value must not deadlock.
		observed = cs.GetInt("cap", -1)
	})

	cs.SetConfig(map[string]any{"cap": 7})
	if observed != 7 {
		t.Fatalf("listener observed %d, want 7", observed)
	}
}

func TestConfigStore_LoadYAML(t *testing.T) {
	cs := NewConfigStore()
	doc := []byte(`
pool:
  name: compiler pool
  workers: 4
  max_active_workers: 2
metrics:
  enabled: true
`)
	if err := cs.LoadYAML(doc); err != nil {
		t.Fatal(err)
	}
	if got := cs.GetString("pool.name", ""); got != "compiler pool" {
		t.Errorf("pool.name = %q", got)
	}
	if got := cs.GetInt("pool.workers", 0); got != 4 {
		t.Errorf("pool.workers = %d", got)
	}
	if got := cs.GetInt("pool.max_active_workers", 0); got != 2 {
		t.Errorf("pool.max_active_workers = %d", got)
	}
	if !cs.GetBool("metrics.enabled", false) {
		t.Error("metrics.enabled = false")
	}
}

func TestConfigStore_LoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.yaml")
	if err := os.WriteFile(path, []byte("pool:\n  workers: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cs := NewConfigStore()
	if err := cs.LoadYAMLFile(path); err != nil {
		t.Fatal(err)
	}
	if got := cs.GetInt("pool.workers", 0); got != 3 {
		t.Fatalf("pool.workers = %d", got)
	}

	if err := cs.LoadYAMLFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file did not error")
	}
}

func TestConfigStore_BadYAML(t *testing.T) {
	cs := NewConfigStore()
	if err := cs.LoadYAML([]byte("{:::")); err == nil {
		t.Fatal("malformed yaml accepted")
	}
}

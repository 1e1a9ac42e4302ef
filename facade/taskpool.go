// File: facade/taskpool.go
// Unified facade layer for hioload-taskpool.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// TaskPool aggregates the core components behind a single facade: the
// worker pool itself, the dynamic config store, Prometheus metrics and
// debug probes. The facade exposes lifecycle control, task submission
// and the Control interface, and applies config hot-reloads (currently
// the admission cap) to the live pool.

package facade

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/hioload-taskpool/api"
	"github.com/momentics/hioload-taskpool/control"
	"github.com/momentics/hioload-taskpool/pool"
)

// Config holds parameters immutable per run. Runtime-tunable knobs
// (the admission cap) go through the Control interface instead.
type Config struct {
	Name             string // Pool name, used for worker thread names and metrics labels
	NumWorkers       int    // Worker roster size
	MaxActiveWorkers int    // Initial admission cap; 0 means the full roster
	CreatePeers      bool   // Whether worker threads get environment-level peer objects
	WorkerStackSize  int    // Stack-size hint handed to the spawner
	EnableMetrics    bool   // Whether to register the Prometheus collector
	EnableDebug      bool   // Whether to register debug probes
	MeasureWaitTime  bool   // Whether workers account time spent parked
	ConfigFile       string // Optional YAML file merged into the config store
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		Name:            "taskpool",
		NumWorkers:      4,
		EnableMetrics:   true,
		EnableDebug:     true,
		MeasureWaitTime: false,
	}
}

// TaskPool is the main facade type.
// It implements api.GracefulShutdown to allow unified shutdown logic.
type TaskPool struct {
	pool     *pool.ThreadPool
	store    *control.ConfigStore
	probes   *control.DebugProbes
	registry *prometheus.Registry

	config     *Config
	instanceID string

	mu       sync.Mutex
	shutdown bool
}

// Ensure compliance with the core contracts.
var (
	_ api.GracefulShutdown = (*TaskPool)(nil)
	_ api.Control          = (*TaskPool)(nil)
)

// New constructs a TaskPool with the given configuration, spawning the
// worker roster and wiring control, metrics and debug probes.
func New(cfg *Config, opts ...pool.Option) (*TaskPool, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	tp := &TaskPool{
		config:     cfg,
		store:      control.NewConfigStore(),
		probes:     control.NewDebugProbes(),
		instanceID: uuid.NewString(),
	}

	if cfg.ConfigFile != "" {
		if err := tp.store.LoadYAMLFile(cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	name := tp.store.GetString("pool.name", cfg.Name)
	workers := tp.store.GetInt("pool.workers", cfg.NumWorkers)

	poolOpts := append([]pool.Option{
		pool.WithCreatePeers(cfg.CreatePeers),
		pool.WithWorkerStackSize(cfg.WorkerStackSize),
		pool.WithWaitTimeMeasurement(cfg.MeasureWaitTime),
		pool.WithBaseContext(context.Background()),
	}, opts...)

	p, err := pool.New(name, workers, poolOpts...)
	if err != nil {
		// Join whatever was spawned before reporting failure.
		if p != nil {
			_ = p.Shutdown()
		}
		return nil, fmt.Errorf("facade: pool init failure: %w", err)
	}
	tp.pool = p

	if maxActive := tp.store.GetInt("pool.max_active_workers", cfg.MaxActiveWorkers); maxActive > 0 {
		if maxActive > workers {
			_ = p.Shutdown()
			return nil, fmt.Errorf("facade: %w: max active workers %d exceeds roster size %d",
				api.ErrInvalidArgument, maxActive, workers)
		}
		p.SetMaxActiveWorkers(maxActive)
	}

	if cfg.EnableMetrics {
		reg, wrapped := control.NewRegistry(name, tp.instanceID)
		if err := wrapped.Register(control.NewPoolCollector(p)); err != nil {
			return nil, fmt.Errorf("facade: metrics init failure: %w", err)
		}
		tp.registry = reg
	}
	if cfg.EnableDebug {
		tp.probes.RegisterPoolProbes(p)
		tp.probes.RegisterRuntimeProbes()
	}

	// A reloaded admission cap takes effect at the next dequeue
	// decision.
	tp.store.OnReload(tp.applyReload)

	tp.store.SetConfig(map[string]any{
		"pool.name":    name,
		"pool.workers": workers,
		"instance_id":  tp.instanceID,
	})
	return tp, nil
}

func (tp *TaskPool) applyReload() {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	if tp.shutdown || tp.pool == nil {
		return
	}
	maxActive := tp.store.GetInt("pool.max_active_workers", 0)
	if maxActive <= 0 || maxActive > tp.pool.GetThreadCount() {
		return
	}
	tp.pool.SetMaxActiveWorkers(maxActive)
}

// Pool exposes the underlying ThreadPool.
func (tp *TaskPool) Pool() *pool.ThreadPool { return tp.pool }

// InstanceID returns the unique identity of this pool instance, as
// used in metrics labels.
func (tp *TaskPool) InstanceID() string { return tp.instanceID }

// Registry returns the private Prometheus registry, or nil when
// metrics are disabled.
func (tp *TaskPool) Registry() *prometheus.Registry { return tp.registry }

// Submit enqueues a task.
func (tp *TaskPool) Submit(task api.Task) { tp.pool.AddTask(task) }

// Start lets workers dequeue tasks.
func (tp *TaskPool) Start() { tp.pool.Start() }

// Stop parks the roster without terminating it.
func (tp *TaskPool) Stop() { tp.pool.Stop() }

// Wait blocks until the pool is quiescent or shutting down.
func (tp *TaskPool) Wait(doWork bool) { tp.pool.Wait(doWork) }

// Shutdown implements api.GracefulShutdown: joins the roster and
// finalizes everything still queued. Idempotent.
func (tp *TaskPool) Shutdown() error {
	tp.mu.Lock()
	already := tp.shutdown
	tp.shutdown = true
	tp.mu.Unlock()
	if already {
		return nil
	}
	if err := tp.pool.Shutdown(); err != nil {
		log.Printf("[facade] pool shutdown: %v", err)
		return err
	}
	return nil
}

// GetConfig implements api.Control.
func (tp *TaskPool) GetConfig() map[string]any { return tp.store.GetSnapshot() }

// SetConfig implements api.Control; merged values are propagated to
// reload listeners, including the live admission cap.
func (tp *TaskPool) SetConfig(cfg map[string]any) error {
	tp.store.SetConfig(cfg)
	return nil
}

// Stats implements api.Control.
func (tp *TaskPool) Stats() map[string]any {
	out := make(map[string]any)
	for k, v := range tp.pool.Stats() {
		out[k] = v
	}
	return out
}

// OnReload implements api.Control.
func (tp *TaskPool) OnReload(fn func()) { tp.store.OnReload(fn) }

// RegisterDebugProbe implements api.Control.
func (tp *TaskPool) RegisterDebugProbe(name string, fn func() any) {
	tp.probes.RegisterProbe(name, fn)
}

// DumpDebugState returns the output of every registered probe.
func (tp *TaskPool) DumpDebugState() map[string]any { return tp.probes.DumpState() }

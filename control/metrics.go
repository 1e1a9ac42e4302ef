// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus metrics over live pools. Each pool gets a collector fed
// from its Stats snapshot; registries are private so embedders choose
// where to expose them.

package control

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/hioload-taskpool/pool"
)

// NewRegistry creates a private Prometheus registry labeled with the
// pool instance identity.
func NewRegistry(poolName, instanceID string) (*prometheus.Registry, prometheus.Registerer) {
	reg := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"pool": poolName, "instance": instanceID}, reg)
	return reg, wrapped
}

// PoolCollector exposes a ThreadPool's counters as Prometheus metrics.
type PoolCollector struct {
	pool *pool.ThreadPool

	workers   *prometheus.Desc
	waiting   *prometheus.Desc
	queued    *prometheus.Desc
	maxActive *prometheus.Desc
	submitted *prometheus.Desc
	executed  *prometheus.Desc
	finalized *prometheus.Desc
	panics    *prometheus.Desc
	waitTime  *prometheus.Desc
}

// NewPoolCollector builds a collector for p.
func NewPoolCollector(p *pool.ThreadPool) *PoolCollector {
	return &PoolCollector{
		pool: p,
		workers: prometheus.NewDesc("taskpool_workers",
			"Worker roster size.", nil, nil),
		waiting: prometheus.NewDesc("taskpool_waiting_workers",
			"Workers currently parked between tasks.", nil, nil),
		queued: prometheus.NewDesc("taskpool_queued_tasks",
			"Tasks queued and not yet dequeued.", nil, nil),
		maxActive: prometheus.NewDesc("taskpool_max_active_workers",
			"Soft admission cap on concurrently executing workers.", nil, nil),
		submitted: prometheus.NewDesc("taskpool_submitted_tasks_total",
			"Tasks ever submitted.", nil, nil),
		executed: prometheus.NewDesc("taskpool_executed_tasks_total",
			"Task Run invocations.", nil, nil),
		finalized: prometheus.NewDesc("taskpool_finalized_tasks_total",
			"Task Finalize invocations.", nil, nil),
		panics: prometheus.NewDesc("taskpool_task_panics_total",
			"Task panics recovered by workers.", nil, nil),
		waitTime: prometheus.NewDesc("taskpool_worker_wait_seconds_total",
			"Cumulative time workers spent parked (when measurement is on).", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.workers
	ch <- c.waiting
	ch <- c.queued
	ch <- c.maxActive
	ch <- c.submitted
	ch <- c.executed
	ch <- c.finalized
	ch <- c.panics
	ch <- c.waitTime
}

// Collect implements prometheus.Collector.
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.pool.Stats()
	gauge := func(d *prometheus.Desc, key string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(s[key]))
	}
	counter := func(d *prometheus.Desc, key string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(s[key]))
	}
	gauge(c.workers, "workers")
	gauge(c.waiting, "waiting_workers")
	gauge(c.queued, "queued_tasks")
	gauge(c.maxActive, "max_active")
	counter(c.submitted, "submitted_tasks")
	counter(c.executed, "executed_tasks")
	counter(c.finalized, "finalized_tasks")
	counter(c.panics, "task_panics")
	ch <- prometheus.MustNewConstMetric(c.waitTime, prometheus.CounterValue,
		float64(s["total_wait_ns"])/1e9)
}

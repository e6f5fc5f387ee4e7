// Package metrics records task results as Prometheus metrics.
//
// The CLI runs one task and exits, so metrics are not served over HTTP.
// They are written to a textfile for the node exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/taskrun/internal/core/domain"
	"go.trai.ch/zerr"
)

// Collector implements ports.Metrics on a private Prometheus registry.
type Collector struct {
	registry *prometheus.Registry

	results        *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	spawnFailures  *prometheus.CounterVec
	lastCompletion *prometheus.GaugeVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	return NewCollectorWithRegistry(prometheus.NewRegistry())
}

// NewCollectorWithRegistry creates a Collector that registers its metrics on registry.
func NewCollectorWithRegistry(registry *prometheus.Registry) *Collector {
	c := &Collector{
		registry: registry,
		results: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskrun_task_results_total",
				Help: "Task invocations by result kind and process error reason",
			},
			[]string{"task", "result", "reason"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "taskrun_task_duration_seconds",
				Help:    "Wall time of task processes",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
			},
			[]string{"task"},
		),
		spawnFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskrun_task_spawn_failures_total",
				Help: "Tasks whose process could not be started",
			},
			[]string{"task"},
		),
		lastCompletion: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "taskrun_task_last_completion_timestamp_seconds",
				Help: "Unix time of the last completed invocation by result kind",
			},
			[]string{"task", "result"},
		),
	}

	registry.MustRegister(c.results, c.duration, c.spawnFailures, c.lastCompletion)
	return c
}

// Registry returns the registry the metrics are recorded on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveResult records a classified result and the time the process ran.
func (c *Collector) ObserveResult(task string, result domain.Result, duration time.Duration) {
	kind := string(result.Kind())
	var reason string
	if processErr, ok := result.(*domain.ProcessError); ok {
		reason = processErr.Reason
	}

	c.results.WithLabelValues(task, kind, reason).Inc()
	c.duration.WithLabelValues(task).Observe(duration.Seconds())
	c.lastCompletion.WithLabelValues(task, kind).SetToCurrentTime()
}

// ObserveSpawnFailure records a task that could not be started.
func (c *Collector) ObserveSpawnFailure(task string) {
	c.spawnFailures.WithLabelValues(task).Inc()
}

// WriteTextfile writes all metrics to path atomically.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrMetricsWriteFailed, err.Error()), "path", path)
	}
	return nil
}

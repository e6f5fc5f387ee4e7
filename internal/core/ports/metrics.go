package ports

import (
	"time"

	"go.trai.ch/taskrun/internal/core/domain"
)

// Metrics records task invocation outcomes.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveResult records a classified result and the time the process ran.
	ObserveResult(task string, result domain.Result, duration time.Duration)
	// ObserveSpawnFailure records a task that could not be started.
	ObserveSpawnFailure(task string)
	// WriteTextfile writes all recorded metrics to path in the Prometheus text format.
	WriteTextfile(path string) error
}

// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/taskrun/internal/core/domain"
)

// Process runs a single task process to completion.
//
//go:generate mockgen -source=process.go -destination=mocks/mock_process.go -package=mocks
type Process interface {
	// Run starts the process described by spec, feeds it stdin, captures its
	// output and waits for it to exit, time out or be cancelled through ctx.
	//
	// Non-zero exit, timeout and cancellation are reported in the returned
	// RawOutcome. The only error is a *domain.SpawnError, returned when the
	// process could not be started at all.
	Run(ctx context.Context, spec domain.ProcessSpec) (*domain.RawOutcome, error)
}

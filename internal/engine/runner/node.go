package runner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/taskrun/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/taskrun/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/taskrun/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/taskrun/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/taskrun/internal/core/ports"
)

// NodeID is the unique identifier for the runner Graft node.
const NodeID graft.ID = "engine.runner"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			process, err := graft.Dep[ports.Process](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(process, tracer, m, log), nil
		},
	})
}

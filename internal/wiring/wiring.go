// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/taskrun/internal/adapters/config"
	_ "go.trai.ch/taskrun/internal/adapters/logger"
	_ "go.trai.ch/taskrun/internal/adapters/metrics"
	_ "go.trai.ch/taskrun/internal/adapters/render"
	_ "go.trai.ch/taskrun/internal/adapters/shell"
	_ "go.trai.ch/taskrun/internal/adapters/telemetry"
	_ "go.trai.ch/taskrun/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/taskrun/internal/app"
	_ "go.trai.ch/taskrun/internal/engine/runner"
)

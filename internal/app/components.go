package app

import "go.trai.ch/taskrun/internal/core/ports"

// Components contains the initialized application components used by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

package ports

import (
	"io"

	"go.trai.ch/taskrun/internal/core/domain"
)

// Renderer writes a task result for the user.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Render writes result for the named task to w.
	Render(w io.Writer, task string, result domain.Result) error
}

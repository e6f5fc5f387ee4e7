package render

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the result renderers Graft node.
const NodeID graft.ID = "adapter.render"

func init() {
	graft.Register(graft.Node[*Renderers]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Renderers, error) {
			return NewRenderers(), nil
		},
	})
}

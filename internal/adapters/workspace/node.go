package workspace

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shift/internal/core/ports"
)

// NodeID is the unique identifier for the workspace adapter Graft node.
const NodeID graft.ID = "adapter.workspace"

func init() {
	graft.Register(graft.Node[ports.Workspace]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Workspace, error) {
			return New(), nil
		},
	})
}

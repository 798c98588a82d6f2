package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shift/internal/core/ports"
)

// NodeID is the unique identifier for the registry connector Graft node.
const NodeID graft.ID = "adapter.registry"

func init() {
	graft.Register(graft.Node[ports.RegistryConnector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RegistryConnector, error) {
			return NewConnector(), nil
		},
	})
}

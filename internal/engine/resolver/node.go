package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shift/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shift/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/shift/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewResolver(tel, log), nil
		},
	})
}

package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shift/internal/adapters/cache"     //nolint:depguard // Wired in app layer
	"go.trai.ch/shift/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/shift/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/shift/internal/adapters/registry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/shift/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/shift/internal/adapters/workspace" //nolint:depguard // Wired in app layer
	"go.trai.ch/shift/internal/core/ports"
	"go.trai.ch/shift/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what the entry point needs besides the App itself.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			registry.NodeID,
			cache.NodeID,
			workspace.NodeID,
			resolver.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	connector, err := graft.Dep[ports.RegistryConnector](ctx)
	if err != nil {
		return nil, err
	}

	metadataCache, err := graft.Dep[ports.MetadataCache](ctx)
	if err != nil {
		return nil, err
	}

	ws, err := graft.Dep[ports.Workspace](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, connector, metadataCache, ws, res, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: tel,
	}, nil
}

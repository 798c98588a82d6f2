// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/shift/internal/adapters/cache"
	_ "go.trai.ch/shift/internal/adapters/config"
	_ "go.trai.ch/shift/internal/adapters/logger"
	_ "go.trai.ch/shift/internal/adapters/registry"
	_ "go.trai.ch/shift/internal/adapters/telemetry"
	_ "go.trai.ch/shift/internal/adapters/workspace"
	// Register app and engine nodes.
	_ "go.trai.ch/shift/internal/app"
	_ "go.trai.ch/shift/internal/engine/resolver"
)

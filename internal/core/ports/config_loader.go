package ports

import "go.trai.ch/shift/internal/core/domain"

// ConfigLoader defines the interface for loading the shift configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the configuration for the given working directory.
	// A missing configuration file yields the defaults rooted at cwd.
	Load(cwd string) (*domain.Config, error)
}

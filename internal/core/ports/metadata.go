// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/shift/internal/core/domain"
)

// MetadataProvider fetches update and migration metadata for a published package.
//
//go:generate go run go.uber.org/mock/mockgen -source=metadata.go -destination=mocks/mock_metadata.go -package=mocks
type MetadataProvider interface {
	// FetchMetadata returns the metadata of name at version.
	// Returns nil, nil if the package or version does not exist.
	// Any error is a fetch failure and aborts the resolution.
	FetchMetadata(ctx context.Context, name string, version domain.Version) (*domain.PackageMetadata, error)
}

// TagResolver turns a dist-tag such as "latest" into a concrete version.
type TagResolver interface {
	// ResolveTag returns the version the tag currently points at.
	ResolveTag(ctx context.Context, name, tag string) (string, error)
}

// Registry is a package registry able to answer both metadata and tag queries.
type Registry interface {
	MetadataProvider
	TagResolver
}

// RegistryConnector creates registry clients from settings known only at run time.
type RegistryConnector interface {
	// Connect returns a Registry configured with the given settings.
	Connect(settings domain.RegistrySettings) (Registry, error)
}

// MetadataCache stores fetched metadata between runs.
type MetadataCache interface {
	// Get returns the cached metadata for name at version.
	// Returns nil, nil on a cache miss.
	Get(name string, version domain.Version) (*domain.PackageMetadata, error)

	// Put stores metadata for name at the requested version.
	Put(name string, version domain.Version, metadata *domain.PackageMetadata) error
}

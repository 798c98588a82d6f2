package resolver

import (
	"context"
	"fmt"

	"go.trai.ch/shift/internal/core/domain"
	"go.trai.ch/shift/internal/core/ports"
)

// WithInstalledOverrides pins the installed version of the packages listed in from.
// Packages not listed are answered by the wrapped oracle.
func WithInstalledOverrides(oracle ports.InstalledVersions, from map[string]string) ports.InstalledVersions {
	if len(from) == 0 {
		return oracle
	}
	pinned := make(map[string]domain.Version, len(from))
	for name, version := range from {
		pinned[name] = domain.CoerceVersion(version)
	}
	return &pinnedOracle{next: oracle, pinned: pinned}
}

type pinnedOracle struct {
	next   ports.InstalledVersions
	pinned map[string]domain.Version
}

func (o *pinnedOracle) InstalledVersion(name string) (domain.Version, bool) {
	if v, ok := o.pinned[name]; ok {
		return v, true
	}
	return o.next.InstalledVersion(name)
}

// WithTargetOverrides replaces the requested version of the packages listed in to.
func WithTargetOverrides(provider ports.MetadataProvider, to map[string]string) ports.MetadataProvider {
	if len(to) == 0 {
		return provider
	}
	targets := make(map[string]domain.Version, len(to))
	for name, version := range to {
		targets[name] = domain.CoerceVersion(version)
	}
	return &targetProvider{next: provider, targets: targets}
}

type targetProvider struct {
	next    ports.MetadataProvider
	targets map[string]domain.Version
}

func (p *targetProvider) FetchMetadata(
	ctx context.Context,
	name string,
	version domain.Version,
) (*domain.PackageMetadata, error) {
	if v, ok := p.targets[name]; ok {
		version = v
	}
	return p.next.FetchMetadata(ctx, name, version)
}

// WithPackageGroups appends a bucket to the metadata of every group head that
// moves its companions to the same version, for those companions that are installed.
func WithPackageGroups(provider ports.MetadataProvider, groups domain.PackageGroups) ports.MetadataProvider {
	if len(groups) == 0 {
		return provider
	}
	return &groupProvider{next: provider, groups: groups}
}

type groupProvider struct {
	next   ports.MetadataProvider
	groups domain.PackageGroups
}

func (p *groupProvider) FetchMetadata(
	ctx context.Context,
	name string,
	version domain.Version,
) (*domain.PackageMetadata, error) {
	metadata, err := p.next.FetchMetadata(ctx, name, version)
	if err != nil || metadata == nil {
		return metadata, err
	}

	companions := p.groups.Companions(name)
	if len(companions) == 0 {
		return metadata, nil
	}

	bucket := domain.UpdateBucket{
		ID:       metadata.Version.String() + "-package-group",
		Version:  metadata.Version,
		Packages: make([]domain.UpdateTarget, 0, len(companions)),
	}
	for _, companion := range companions {
		bucket.Packages = append(bucket.Packages, domain.UpdateTarget{
			Name:               companion,
			Version:            metadata.Version,
			IfPackageInstalled: companion,
		})
	}

	// Copy so a memoised or cached value is never mutated.
	out := *metadata
	out.PackageJSONUpdates = append(
		append(make([]domain.UpdateBucket, 0, len(metadata.PackageJSONUpdates)+1), metadata.PackageJSONUpdates...),
		bucket,
	)
	return &out, nil
}

// WithCache serves metadata from cache when present and stores provider answers in it.
// Cache failures are logged and never fail a fetch.
func WithCache(provider ports.MetadataProvider, cache ports.MetadataCache, logger ports.Logger) ports.MetadataProvider {
	return &cachedProvider{next: provider, cache: cache, logger: logger}
}

type cachedProvider struct {
	next   ports.MetadataProvider
	cache  ports.MetadataCache
	logger ports.Logger
}

func (p *cachedProvider) FetchMetadata(
	ctx context.Context,
	name string,
	version domain.Version,
) (*domain.PackageMetadata, error) {
	cached, err := p.cache.Get(name, version)
	if err != nil {
		p.logger.Warn(fmt.Sprintf("ignoring metadata cache for %s@%s: %v", name, version, err))
	} else if cached != nil {
		markCached(ctx)
		return cached, nil
	}

	metadata, err := p.next.FetchMetadata(ctx, name, version)
	if err != nil || metadata == nil {
		return metadata, err
	}

	if err := p.cache.Put(name, version, metadata); err != nil {
		p.logger.Warn(fmt.Sprintf("failed to cache metadata for %s@%s: %v", name, version, err))
	}
	return metadata, nil
}

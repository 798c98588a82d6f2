// Package resolver computes the package versions and migrations owed by an upgrade.
package resolver

import (
	"context"

	"go.trai.ch/shift/internal/core/domain"
	"go.trai.ch/shift/internal/core/ports"
)

// Resolver walks the update graph of a package and collects the resulting
// package versions and migrations.
type Resolver struct {
	telemetry   ports.Telemetry
	logger      ports.Logger
	concurrency int
}

// NewResolver creates a Resolver that fetches metadata sequentially.
func NewResolver(telemetry ports.Telemetry, logger ports.Logger) *Resolver {
	return &Resolver{
		telemetry:   telemetry,
		logger:      logger,
		concurrency: 1,
	}
}

// WithConcurrency returns a copy of r that prefetches up to n sibling packages at once.
// The result does not depend on n.
func (r *Resolver) WithConcurrency(n int) *Resolver {
	out := *r
	out.concurrency = max(n, 1)
	return &out
}

// Resolve computes the upgrade of rootPackage to rootVersion.
// A provider error aborts the resolution and is returned unchanged; no partial result is returned.
func (r *Resolver) Resolve(
	ctx context.Context,
	rootPackage, rootVersion string,
	oracle ports.InstalledVersions,
	provider ports.MetadataProvider,
) (*domain.Result, error) {
	p := &pass{
		state:   newState(),
		oracle:  oracle,
		fetcher: newFetcher(provider, r.telemetry, r.logger, r.concurrency),
	}

	if err := p.visit(ctx, rootPackage, domain.CoerceVersion(rootVersion), false); err != nil {
		return nil, err
	}
	return p.state.result(), nil
}

// pass holds everything a single Resolve call needs.
type pass struct {
	state   *state
	oracle  ports.InstalledVersions
	fetcher *fetcher
}

func (p *pass) visit(ctx context.Context, name string, requested domain.Version, alwaysAdd bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.state.satisfied(name, requested) {
		return nil
	}
	p.state.request(name, requested)

	metadata, err := p.fetcher.fetch(ctx, fetchKey{name: name, version: requested})
	if err != nil {
		return err
	}
	if metadata == nil {
		return nil
	}

	p.state.record(name, metadata.Version, alwaysAdd)

	installed, ok := p.oracle.InstalledVersion(name)
	if !ok {
		return nil
	}

	// Migrations are appended before descending so a parent's run before its children's.
	for _, entry := range metadata.Schematics {
		if !domain.Crosses(installed, entry.Version, metadata.Version) {
			continue
		}
		p.state.addMigration(domain.MigrationRecord{
			Package:     name,
			Version:     entry.Version,
			Name:        entry.ID,
			Factory:     entry.Factory,
			Description: entry.Description,
		})
	}

	for _, bucket := range metadata.PackageJSONUpdates {
		if !domain.Crosses(installed, bucket.Version, metadata.Version) {
			continue
		}
		if err := p.applyBucket(ctx, bucket); err != nil {
			return err
		}
	}

	return nil
}

func (p *pass) applyBucket(ctx context.Context, bucket domain.UpdateBucket) error {
	targets := make([]domain.UpdateTarget, 0, len(bucket.Packages))
	for _, target := range bucket.Packages {
		if target.IfPackageInstalled != "" {
			if _, ok := p.oracle.InstalledVersion(target.IfPackageInstalled); !ok {
				continue
			}
		}
		targets = append(targets, target)
	}

	p.warm(ctx, targets)

	for _, target := range targets {
		version := p.state.propose(target.Name, target.Version)
		if err := p.visit(ctx, target.Name, version, target.AlwaysAddToPackageJSON); err != nil {
			return err
		}
		if target.AlwaysAddToPackageJSON {
			p.state.markAlwaysAdd(target.Name)
		}
	}
	return nil
}

// warm prefetches the targets the traversal is about to visit.
func (p *pass) warm(ctx context.Context, targets []domain.UpdateTarget) {
	keys := make([]fetchKey, 0, len(targets))
	for _, target := range targets {
		version := target.Version
		if prev, ok := p.state.proposals[target.Name]; ok {
			version = domain.MaxVersion(prev, version)
		}
		if p.state.satisfied(target.Name, version) {
			continue
		}
		keys = append(keys, fetchKey{name: target.Name, version: version})
	}
	p.fetcher.warm(ctx, keys)
}

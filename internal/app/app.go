// Package app implements the application layer for shift.
package app

import (
	"context"
	"fmt"
	"maps"

	"go.trai.ch/shift/internal/core/domain"
	"go.trai.ch/shift/internal/core/ports"
	"go.trai.ch/shift/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	connector    ports.RegistryConnector
	cache        ports.MetadataCache
	workspace    ports.Workspace
	resolver     *resolver.Resolver
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	connector ports.RegistryConnector,
	cache ports.MetadataCache,
	workspace ports.Workspace,
	res *resolver.Resolver,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		connector:    connector,
		cache:        cache,
		workspace:    workspace,
		resolver:     res,
		logger:       log,
	}
}

// MigrateOptions configuration for the Migrate method.
type MigrateOptions struct {
	// Dir is the directory the configuration is discovered from. Defaults to ".".
	Dir string
	// Target is "package@version", a bare package, a bare version or a dist-tag.
	Target string
	// From and To are comma separated package@version lists.
	From string
	To   string
	// DryRun resolves the plan without writing package.json or migrations.json.
	DryRun bool
	// NoCache bypasses the metadata cache.
	NoCache bool
	// Concurrency overrides the configured prefetch concurrency when positive.
	Concurrency int
	// Registry overrides the configured registry URL when set.
	Registry string
}

// Plan is the outcome of a migrate run.
type Plan struct {
	Root    string
	Request domain.MigrationRequest
	Result  *domain.Result
	DryRun  bool
}

// Migrate resolves the upgrade described by opts and writes it to the workspace.
func (a *App) Migrate(ctx context.Context, opts MigrateOptions) (*Plan, error) {
	// 1. Load the configuration
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Registry != "" {
		cfg.Registry.URL = opts.Registry
	}
	if opts.Concurrency > 0 {
		cfg.Concurrency = opts.Concurrency
	}

	// 2. Parse the request
	req, err := ParseMigrationRequest(opts.Target, opts.From, opts.To, cfg.DefaultPackage)
	if err != nil {
		return nil, err
	}

	// 3. Connect to the registry and pin dist-tags
	registry, err := a.connector.Connect(cfg.Registry)
	if err != nil {
		return nil, err
	}
	if req, err = a.resolveTags(ctx, registry, req); err != nil {
		return nil, err
	}

	// 4. Resolve
	var provider ports.MetadataProvider = registry
	if !opts.NoCache {
		provider = resolver.WithCache(provider, a.cache, a.logger)
	}
	provider = resolver.WithPackageGroups(provider, cfg.PackageGroups)
	provider = resolver.WithTargetOverrides(provider, req.To)

	oracle := resolver.WithInstalledOverrides(a.workspace.InstalledVersions(cfg.Root), req.From)

	a.logger.Info(fmt.Sprintf("resolving %s@%s", req.TargetPackage, req.TargetVersion))
	result, err := a.resolver.WithConcurrency(cfg.Concurrency).
		Resolve(ctx, req.TargetPackage, req.TargetVersion, oracle, provider)
	if err != nil {
		err = zerr.Wrap(err, domain.ErrResolutionFailed.Error())
		return nil, zerr.With(err, "target", req.TargetPackage+"@"+req.TargetVersion)
	}

	plan := &Plan{
		Root:    cfg.Root,
		Request: req,
		Result:  result,
		DryRun:  opts.DryRun,
	}
	if opts.DryRun {
		return plan, nil
	}

	// 5. Write the workspace
	if err := a.workspace.WritePackageJSON(cfg.Root, result.PackageJSON); err != nil {
		return nil, err
	}
	if err := a.workspace.WriteMigrations(cfg.Root, result.Migrations); err != nil {
		return nil, err
	}

	return plan, nil
}

// resolveTags replaces dist-tags in the target and the to-overrides with the versions they point at.
func (a *App) resolveTags(
	ctx context.Context,
	tags ports.TagResolver,
	req domain.MigrationRequest,
) (domain.MigrationRequest, error) {
	resolve := func(name, tag string) (string, error) {
		if domain.IsVersionLike(tag) {
			return tag, nil
		}
		version, err := tags.ResolveTag(ctx, name, tag)
		if err != nil {
			return "", err
		}
		version = domain.NormalizeVersionOrTag(version)
		a.logger.Info(fmt.Sprintf("%s@%s resolved to %s", name, tag, version))
		return version, nil
	}

	version, err := resolve(req.TargetPackage, req.TargetVersion)
	if err != nil {
		return req, err
	}
	req.TargetVersion = version

	to := maps.Clone(req.To)
	for name, tag := range req.To {
		if to[name], err = resolve(name, tag); err != nil {
			return req, err
		}
	}
	req.To = to

	return req, nil
}

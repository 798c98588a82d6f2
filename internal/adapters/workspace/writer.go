// Package workspace reads installed package versions from and writes migration
// output to a JavaScript workspace.
package workspace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/shift/internal/core/domain"
	"go.trai.ch/shift/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	dependenciesKey    = "dependencies"
	devDependenciesKey = "devDependencies"
)

// Workspace implements ports.Workspace on the local filesystem.
type Workspace struct{}

// New creates a new Workspace.
func New() *Workspace {
	return &Workspace{}
}

// InstalledVersions returns the installed-state oracle for the workspace at root.
func (w *Workspace) InstalledVersions(root string) ports.InstalledVersions {
	return NewInstalled(root)
}

// WritePackageJSON sets the resolved versions in root/package.json.
// A package listed in devDependencies is updated there, otherwise in dependencies.
// Packages listed in neither are added to dependencies only when AlwaysAddToPackageJSON is set.
// Key order and unrelated content of the file are preserved.
func (w *Workspace) WritePackageJSON(root string, packages map[string]domain.ResolvedPackage) error {
	path := filepath.Join(root, domain.PackageJSONFileName)

	//nolint:gosec // Path is built from the workspace root
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPackageJSONReadFailed.Error()), "path", path)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPackageJSONParseFailed.Error()), "path", path)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return zerr.With(domain.ErrPackageJSONParseFailed, "path", path)
	}
	manifest := doc.Content[0]

	names := make([]string, 0, len(packages))
	for name := range packages {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		applyVersion(manifest, name, packages[name])
	}

	out, err := encodeJSON(&doc)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPackageJSONWriteFailed.Error()), "path", path)
	}
	if err := os.WriteFile(path, out, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPackageJSONWriteFailed.Error()), "path", path)
	}
	return nil
}

func applyVersion(manifest *yaml.Node, name string, pkg domain.ResolvedPackage) {
	version := stringNode(pkg.Version.String())

	for _, section := range []string{devDependenciesKey, dependenciesKey} {
		deps := mappingEntry(manifest, section)
		if deps != nil && deps.Kind == yaml.MappingNode && mappingEntry(deps, name) != nil {
			setMappingEntry(deps, name, version)
			return
		}
	}

	if !pkg.AlwaysAddToPackageJSON {
		return
	}

	deps := mappingEntry(manifest, dependenciesKey)
	if deps == nil || deps.Kind != yaml.MappingNode {
		deps = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		setMappingEntry(manifest, dependenciesKey, deps)
	}
	setMappingEntry(deps, name, version)
}

type migrationsFile struct {
	Migrations []migrationDTO `json:"migrations"`
}

type migrationDTO struct {
	Package string `json:"package"`
	Version string `json:"version"`
	Name    string `json:"name"`
}

// WriteMigrations writes the migrations to root/migrations.json in order.
// Nothing is written when the list is empty.
func (w *Workspace) WriteMigrations(root string, migrations []domain.MigrationRecord) error {
	if len(migrations) == 0 {
		return nil
	}

	file := migrationsFile{Migrations: make([]migrationDTO, 0, len(migrations))}
	for _, m := range migrations {
		file.Migrations = append(file.Migrations, migrationDTO{
			Package: m.Package,
			Version: m.Version.String(),
			Name:    m.Name,
		})
	}

	path := filepath.Join(root, domain.MigrationsFileName)
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMigrationsWriteFailed.Error()), "path", path)
	}
	if err := os.WriteFile(path, append(data, '\n'), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMigrationsWriteFailed.Error()), "path", path)
	}
	return nil
}

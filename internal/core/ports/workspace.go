package ports

import "go.trai.ch/shift/internal/core/domain"

// InstalledVersions answers whether a package is present in the workspace, and at what version.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type InstalledVersions interface {
	// InstalledVersion returns the installed version of name and whether it is installed at all.
	InstalledVersion(name string) (domain.Version, bool)
}

// Workspace reads installed state from and writes migration output to a workspace.
type Workspace interface {
	// InstalledVersions returns the installed-state oracle for the workspace at root.
	InstalledVersions(root string) InstalledVersions

	// WritePackageJSON applies resolved versions to root/package.json.
	WritePackageJSON(root string, packages map[string]domain.ResolvedPackage) error

	// WriteMigrations writes the ordered migration list to root/migrations.json.
	WriteMigrations(root string, migrations []domain.MigrationRecord) error
}

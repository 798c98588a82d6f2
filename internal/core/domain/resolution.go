package domain

import "slices"

// ResolvedPackage is the version a package must end up at after the upgrade.
type ResolvedPackage struct {
	Version                Version `json:"version"`
	AlwaysAddToPackageJSON bool    `json:"alwaysAddToPackageJson"`
}

// MigrationRecord is a migration owed by the workspace, in execution order.
type MigrationRecord struct {
	Package     string  `json:"package"`
	Version     Version `json:"version"`
	Name        string  `json:"name"`
	Factory     string  `json:"factory"`
	Description string  `json:"description,omitempty"`
}

// Result is the outcome of a resolution pass.
type Result struct {
	PackageJSON map[string]ResolvedPackage `json:"packageJson"`
	Migrations  []MigrationRecord          `json:"migrations"`
}

// PackageNames returns the resolved package names in lexical order.
func (r *Result) PackageNames() []string {
	names := make([]string, 0, len(r.PackageJSON))
	for name := range r.PackageJSON {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

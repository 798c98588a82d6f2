package domain

// PackageMetadata is what a metadata provider knows about one published version of a package.
type PackageMetadata struct {
	// Version is the authoritative version of the fetched package.
	Version Version `json:"version"`

	// PackageJSONUpdates lists the update buckets in declared order.
	PackageJSONUpdates []UpdateBucket `json:"packageJsonUpdates,omitempty"`

	// Schematics lists the migrations in declared order.
	Schematics []MigrationEntry `json:"schematics,omitempty"`
}

// UpdateBucket groups sibling package updates that are owed once the owning
// package crosses Version.
type UpdateBucket struct {
	ID       string         `json:"id"`
	Version  Version        `json:"version"`
	Packages []UpdateTarget `json:"packages,omitempty"`
}

// UpdateTarget is a single package update inside an UpdateBucket.
type UpdateTarget struct {
	Name    string  `json:"name"`
	Version Version `json:"version"`

	// AlwaysAddToPackageJSON requests the package be added to package.json
	// even when the workspace does not list it yet.
	AlwaysAddToPackageJSON bool `json:"alwaysAddToPackageJson,omitempty"`

	// IfPackageInstalled, when set, names a package that must be installed
	// for this target to apply.
	IfPackageInstalled string `json:"ifPackageInstalled,omitempty"`
}

// MigrationEntry is one runnable migration published by a package.
type MigrationEntry struct {
	ID          string  `json:"id"`
	Version     Version `json:"version"`
	Factory     string  `json:"factory"`
	Description string  `json:"description,omitempty"`
}

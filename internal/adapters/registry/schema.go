package registry

import (
	"encoding/json"
	"strings"
)

// packageManifest is the subset of a published package.json the registry adapter reads.
type packageManifest struct {
	Version      string          `json:"version"`
	NxMigrations json.RawMessage `json:"nx-migrations"`
	NgUpdate     *struct {
		Migrations string `json:"migrations"`
	} `json:"ng-update"`
}

// migrationsPath returns the path of the migration manifest declared by the package.
// nx-migrations may be a plain path or an object with a migrations key;
// ng-update.migrations is used when nx-migrations is absent.
func (m *packageManifest) migrationsPath() string {
	if len(m.NxMigrations) > 0 {
		var path string
		if err := json.Unmarshal(m.NxMigrations, &path); err == nil && path != "" {
			return cleanPath(path)
		}
		var obj struct {
			Migrations string `json:"migrations"`
		}
		if err := json.Unmarshal(m.NxMigrations, &obj); err == nil && obj.Migrations != "" {
			return cleanPath(obj.Migrations)
		}
	}
	if m.NgUpdate != nil && m.NgUpdate.Migrations != "" {
		return cleanPath(m.NgUpdate.Migrations)
	}
	return ""
}

func cleanPath(p string) string {
	return strings.TrimPrefix(strings.TrimPrefix(p, "./"), "/")
}

// bucketDTO is an entry of packageJsonUpdates, minus its ordered packages.
type bucketDTO struct {
	Version string `yaml:"version"`
}

// targetDTO is a package entry inside an update bucket.
type targetDTO struct {
	Version                string `yaml:"version"`
	AlwaysAddToPackageJSON bool   `yaml:"alwaysAddToPackageJson"`
	IfPackageInstalled     string `yaml:"ifPackageInstalled"`
}

// migrationDTO is an entry of schematics or generators.
type migrationDTO struct {
	Version        string `yaml:"version"`
	Description    string `yaml:"description"`
	Factory        string `yaml:"factory"`
	Implementation string `yaml:"implementation"`
}

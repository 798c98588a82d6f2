package domain

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// ConfigFileName is the name of the shift configuration file.
	ConfigFileName = "shift.yaml"

	// PackageJSONFileName is the workspace manifest updated by a migration run.
	PackageJSONFileName = "package.json"

	// MigrationsFileName is the migration manifest written next to package.json.
	MigrationsFileName = "migrations.json"

	// NodeModulesDirName is where installed packages live.
	NodeModulesDirName = "node_modules"

	// CacheDirEnv overrides the metadata cache directory.
	CacheDirEnv = "SHIFT_CACHE_DIR"

	// CacheTTL is how long a cached metadata entry is served before it is fetched again.
	CacheTTL = 7 * 24 * time.Hour

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the directory used for cached package metadata.
func DefaultCachePath() string {
	if dir := os.Getenv(CacheDirEnv); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "shift", "metadata")
}

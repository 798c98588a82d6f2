package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidTarget is returned when the migrate target cannot be parsed.
	ErrInvalidTarget = zerr.New("provide the correct package name and version, e.g. @nrwl/workspace@9.0.0")

	// ErrInvalidFromOverride is returned when a --from entry is not package@version.
	ErrInvalidFromOverride = zerr.New(`Incorrect 'from' section. Use --from="package@version"`)

	// ErrInvalidToOverride is returned when a --to entry is not package@version.
	ErrInvalidToOverride = zerr.New(`Incorrect 'to' section. Use --to="package@version"`)

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConcurrency is returned when the configured concurrency is not positive.
	ErrInvalidConcurrency = zerr.New("concurrency must be a positive number")

	// ErrInvalidRegistryURL is returned when a registry URL is not an absolute http(s) URL.
	ErrInvalidRegistryURL = zerr.New("registry URL must be an absolute http or https URL")

	// ErrRegistryRequestFailed is returned when a registry request fails.
	ErrRegistryRequestFailed = zerr.New("failed to make registry request")

	// ErrRegistryParseFailed is returned when a registry response cannot be parsed.
	ErrRegistryParseFailed = zerr.New("failed to parse registry response")

	// ErrTagNotFound is returned when a dist-tag does not exist for a package.
	ErrTagNotFound = zerr.New("dist-tag not found")

	// ErrMigrationsFetchFailed is returned when a package's migration manifest cannot be fetched.
	ErrMigrationsFetchFailed = zerr.New("failed to fetch migrations manifest")

	// ErrMigrationsParseFailed is returned when a migration manifest cannot be parsed.
	ErrMigrationsParseFailed = zerr.New("failed to parse migrations manifest")

	// ErrResolutionFailed is returned when resolving the migration plan fails.
	ErrResolutionFailed = zerr.New("failed to resolve migrations")

	// ErrCacheCreateFailed is returned when the metadata cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create metadata cache directory")

	// ErrCacheReadFailed is returned when reading from the metadata cache fails.
	ErrCacheReadFailed = zerr.New("failed to read from metadata cache")

	// ErrCacheWriteFailed is returned when writing to the metadata cache fails.
	ErrCacheWriteFailed = zerr.New("failed to write to metadata cache")

	// ErrCacheMarshalFailed is returned when cache data cannot be marshaled.
	ErrCacheMarshalFailed = zerr.New("failed to marshal metadata cache entry")

	// ErrCacheUnmarshalFailed is returned when cache data cannot be unmarshaled.
	ErrCacheUnmarshalFailed = zerr.New("failed to unmarshal metadata cache entry")

	// ErrPackageJSONReadFailed is returned when the workspace package.json cannot be read.
	ErrPackageJSONReadFailed = zerr.New("failed to read package.json")

	// ErrPackageJSONParseFailed is returned when the workspace package.json is malformed.
	ErrPackageJSONParseFailed = zerr.New("failed to parse package.json")

	// ErrPackageJSONWriteFailed is returned when package.json cannot be written.
	ErrPackageJSONWriteFailed = zerr.New("failed to write package.json")

	// ErrMigrationsWriteFailed is returned when migrations.json cannot be written.
	ErrMigrationsWriteFailed = zerr.New("failed to write migrations.json")
)

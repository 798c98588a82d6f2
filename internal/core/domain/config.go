package domain

import "time"

// Default registry settings.
const (
	DefaultRegistryURL     = "https://registry.npmjs.org"
	DefaultFilesURL        = "https://unpkg.com"
	DefaultRegistryTimeout = 30 * time.Second
	DefaultConcurrency     = 4
)

// RegistrySettings configures how package metadata is fetched.
type RegistrySettings struct {
	// URL is the base URL of the npm-compatible registry.
	URL string
	// FilesURL serves individual files of published packages as {FilesURL}/{name}@{version}/{path}.
	FilesURL string
	// Timeout bounds every HTTP request.
	Timeout time.Duration
}

// Config is the resolved configuration of a shift invocation.
type Config struct {
	// Root is the workspace directory containing package.json.
	Root           string
	Registry       RegistrySettings
	Concurrency    int
	DefaultPackage string
	PackageGroups  PackageGroups
}

// DefaultConfig returns the configuration used when no shift.yaml is found.
func DefaultConfig(root string) *Config {
	return &Config{
		Root: root,
		Registry: RegistrySettings{
			URL:      DefaultRegistryURL,
			FilesURL: DefaultFilesURL,
			Timeout:  DefaultRegistryTimeout,
		},
		Concurrency:    DefaultConcurrency,
		DefaultPackage: DefaultPackageGroup,
		PackageGroups:  DefaultPackageGroups(),
	}
}

package config

// Shiftfile represents the structure of the shift.yaml configuration file.
type Shiftfile struct {
	Version        string              `yaml:"version"`
	Root           string              `yaml:"root"`
	Registry       RegistryDTO         `yaml:"registry"`
	Concurrency    *int                `yaml:"concurrency"`
	DefaultPackage string              `yaml:"defaultPackage"`
	PackageGroups  map[string][]string `yaml:"packageGroups"`
}

// RegistryDTO represents the registry section of the configuration.
type RegistryDTO struct {
	URL     string `yaml:"url"`
	Files   string `yaml:"files"`
	Timeout string `yaml:"timeout"`
}

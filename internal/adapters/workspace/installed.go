package workspace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/shift/internal/core/domain"
)

// Installed answers installed versions from <root>/node_modules.
type Installed struct {
	root string

	mu       sync.Mutex
	versions map[string]installedVersion
}

type installedVersion struct {
	version domain.Version
	ok      bool
}

// NewInstalled creates an oracle for the workspace at root.
func NewInstalled(root string) *Installed {
	return &Installed{root: root, versions: make(map[string]installedVersion)}
}

// InstalledVersion reads node_modules/<name>/package.json. A package whose manifest
// cannot be read or carries no version is reported as not installed.
func (i *Installed) InstalledVersion(name string) (domain.Version, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if v, ok := i.versions[name]; ok {
		return v.version, v.ok
	}

	v := i.read(name)
	i.versions[name] = v
	return v.version, v.ok
}

func (i *Installed) read(name string) installedVersion {
	path := filepath.Join(i.root, domain.NodeModulesDirName, filepath.FromSlash(name), domain.PackageJSONFileName)
	//nolint:gosec // Path is built from the workspace root and a package name
	data, err := os.ReadFile(path)
	if err != nil {
		return installedVersion{}
	}

	var manifest struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil || manifest.Version == "" {
		return installedVersion{}
	}
	return installedVersion{version: domain.CoerceVersion(manifest.Version), ok: true}
}

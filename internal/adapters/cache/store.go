// Package cache stores fetched package metadata on disk between runs.
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/shift/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.MetadataCache with one JSON file per package version.
// Entries older than the TTL are reported as misses.
type Store struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

type entry struct {
	Name      string                  `json:"name"`
	Version   domain.Version          `json:"version"`
	Metadata  *domain.PackageMetadata `json:"metadata"`
	Timestamp time.Time               `json:"timestamp"`
}

// NewStore creates a Store in the default cache directory.
func NewStore() (*Store, error) {
	return NewStoreWithPath(domain.DefaultCachePath())
}

// NewStoreWithPath creates a Store rooted at dir.
func NewStoreWithPath(dir string) (*Store, error) {
	cleanPath := filepath.Clean(dir)
	if err := os.MkdirAll(cleanPath, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "path", cleanPath)
	}
	return &Store{dir: cleanPath, ttl: domain.CacheTTL, now: time.Now}, nil
}

// Get returns the cached metadata for name at version, or nil on a miss.
func (s *Store) Get(name string, version domain.Version) (*domain.PackageMetadata, error) {
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(s.path(name, version))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheUnmarshalFailed.Error())
	}

	// Hash collisions are treated as misses.
	if e.Name != name || e.Version != version {
		return nil, nil
	}
	if s.now().Sub(e.Timestamp) > s.ttl {
		return nil, nil
	}
	return e.Metadata, nil
}

// Put stores metadata for name at version.
func (s *Store) Put(name string, version domain.Version, metadata *domain.PackageMetadata) error {
	data, err := json.MarshalIndent(entry{
		Name:      name,
		Version:   version,
		Metadata:  metadata,
		Timestamp: s.now(),
	}, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	if err := atomicWriteFile(s.path(name, version), data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "package", name)
	}
	return nil
}

func (s *Store) path(name string, version domain.Version) string {
	sum := xxhash.Sum64String(name + "@" + version.String())
	return filepath.Join(s.dir, strconv.FormatUint(sum, 16)+".json")
}

// atomicWriteFile writes data to a temp file and renames it over path.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "metadata-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

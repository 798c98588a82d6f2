// Package config provides the configuration loader for shift.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/shift/internal/core/domain"
	"go.trai.ch/shift/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load discovers shift.yaml in cwd or one of its parents and merges it over the defaults.
// Without a configuration file the defaults are returned, rooted at cwd.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	configPath, found, err := findConfiguration(absCwd)
	if err != nil {
		return nil, err
	}
	if !found {
		return domain.DefaultConfig(absCwd), nil
	}

	var shiftfile Shiftfile
	if err := readAndUnmarshalYAML(configPath, &shiftfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := l.apply(domain.DefaultConfig(resolveRoot(configPath, shiftfile.Root)), &shiftfile)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, bool, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, true, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", false, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", candidate)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false, nil
		}
		currentDir = parentDir
	}
}

func (l *Loader) apply(cfg *domain.Config, shiftfile *Shiftfile) (*domain.Config, error) {
	if shiftfile.Registry.URL != "" {
		cfg.Registry.URL = strings.TrimRight(shiftfile.Registry.URL, "/")
	}
	if shiftfile.Registry.Files != "" {
		cfg.Registry.FilesURL = strings.TrimRight(shiftfile.Registry.Files, "/")
	}
	if shiftfile.Registry.Timeout != "" {
		timeout, err := time.ParseDuration(shiftfile.Registry.Timeout)
		if err == nil && timeout <= 0 {
			err = errors.New("timeout must be positive")
		}
		if err != nil {
			parseErr := zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
			return nil, zerr.With(parseErr, "registry.timeout", shiftfile.Registry.Timeout)
		}
		cfg.Registry.Timeout = timeout
	}

	if shiftfile.Concurrency != nil {
		if *shiftfile.Concurrency <= 0 {
			return nil, zerr.With(domain.ErrInvalidConcurrency, "concurrency", *shiftfile.Concurrency)
		}
		cfg.Concurrency = *shiftfile.Concurrency
	}

	if shiftfile.DefaultPackage != "" {
		cfg.DefaultPackage = shiftfile.DefaultPackage
	}

	for head, companions := range shiftfile.PackageGroups {
		if len(companions) == 0 {
			l.Logger.Warn("package group " + head + " has no companions and is disabled")
			delete(cfg.PackageGroups, head)
			continue
		}
		cfg.PackageGroups[head] = companions
	}

	return cfg, nil
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by findConfiguration
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}

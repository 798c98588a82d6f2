package registry

import (
	"strings"

	"go.trai.ch/shift/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// parseMigrations decodes a migration manifest. The document is read through
// yaml.v3 nodes so that the declared order of buckets, packages and migrations
// is preserved.
func parseMigrations(data []byte, metadata *domain.PackageMetadata) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return zerr.Wrap(err, domain.ErrMigrationsParseFailed.Error())
	}
	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return zerr.With(domain.ErrMigrationsParseFailed, "reason", "document is not an object")
	}

	var err error
	eachPair(root, func(key string, value *yaml.Node) bool {
		switch key {
		case "schematics", "generators":
			var entries []domain.MigrationEntry
			entries, err = parseSchematics(value)
			metadata.Schematics = append(metadata.Schematics, entries...)
		case "packageJsonUpdates":
			metadata.PackageJSONUpdates, err = parseUpdates(value)
		}
		if err != nil {
			err = zerr.With(err, "section", key)
		}
		return err == nil
	})
	return err
}

func parseSchematics(node *yaml.Node) ([]domain.MigrationEntry, error) {
	if err := expectMapping(node); err != nil {
		return nil, err
	}

	entries := make([]domain.MigrationEntry, 0, len(node.Content)/2)
	var err error
	eachPair(node, func(id string, value *yaml.Node) bool {
		var dto migrationDTO
		if err = value.Decode(&dto); err != nil {
			err = zerr.With(zerr.Wrap(err, domain.ErrMigrationsParseFailed.Error()), "migration", id)
			return false
		}
		factory := dto.Factory
		if factory == "" {
			factory = dto.Implementation
		}
		entries = append(entries, domain.MigrationEntry{
			ID:          id,
			Version:     domain.CoerceVersion(dto.Version),
			Factory:     factory,
			Description: dto.Description,
		})
		return true
	})
	return entries, err
}

func parseUpdates(node *yaml.Node) ([]domain.UpdateBucket, error) {
	if err := expectMapping(node); err != nil {
		return nil, err
	}

	buckets := make([]domain.UpdateBucket, 0, len(node.Content)/2)
	var err error
	eachPair(node, func(id string, value *yaml.Node) bool {
		var bucket domain.UpdateBucket
		bucket, err = parseBucket(id, value)
		if err != nil {
			err = zerr.With(err, "bucket", id)
			return false
		}
		buckets = append(buckets, bucket)
		return true
	})
	return buckets, err
}

func parseBucket(id string, node *yaml.Node) (domain.UpdateBucket, error) {
	var dto bucketDTO
	if err := node.Decode(&dto); err != nil {
		return domain.UpdateBucket{}, zerr.Wrap(err, domain.ErrMigrationsParseFailed.Error())
	}

	bucket := domain.UpdateBucket{ID: id, Version: domain.CoerceVersion(dto.Version)}

	packages := mappingValue(node, "packages")
	if packages == nil {
		return bucket, nil
	}
	if err := expectMapping(packages); err != nil {
		return domain.UpdateBucket{}, err
	}

	var err error
	eachPair(packages, func(name string, value *yaml.Node) bool {
		var target targetDTO
		if err = value.Decode(&target); err != nil {
			err = zerr.With(zerr.Wrap(err, domain.ErrMigrationsParseFailed.Error()), "package", name)
			return false
		}
		bucket.Packages = append(bucket.Packages, domain.UpdateTarget{
			Name:                   name,
			Version:                coerceDeclared(target.Version),
			AlwaysAddToPackageJSON: target.AlwaysAddToPackageJSON,
			IfPackageInstalled:     target.IfPackageInstalled,
		})
		return true
	})
	return bucket, err
}

// coerceDeclared reads a version as written in a manifest, where a leading
// range operator such as "~" or "^" names the version it is anchored at.
func coerceDeclared(raw string) domain.Version {
	return domain.CoerceVersion(strings.TrimLeft(strings.TrimSpace(raw), "^~=v> "))
}

// eachPair calls fn for every key/value pair of a mapping node, in document order,
// until fn returns false.
func eachPair(node *yaml.Node, fn func(key string, value *yaml.Node) bool) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if !fn(node.Content[i].Value, node.Content[i+1]) {
			return
		}
	}
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func expectMapping(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return zerr.With(domain.ErrMigrationsParseFailed, "line", node.Line)
	}
	return nil
}

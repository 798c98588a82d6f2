package app

import (
	"strings"

	"go.trai.ch/shift/internal/core/domain"
	"go.trai.ch/zerr"
)

const latestTag = "latest"

// ParseMigrationRequest turns the raw migrate arguments into a MigrationRequest.
//
// target is "package@version", "package", a bare version or a bare dist-tag.
// A bare version or one of "latest" and "next" targets defaultPackage; any other
// bare word is a package at "latest". from and to are comma separated
// "package@version" lists.
func ParseMigrationRequest(target, from, to, defaultPackage string) (domain.MigrationRequest, error) {
	pkg, version, err := parseTarget(strings.TrimSpace(target), defaultPackage)
	if err != nil {
		return domain.MigrationRequest{}, err
	}

	fromOverrides, err := parseOverrides(from, domain.ErrInvalidFromOverride)
	if err != nil {
		return domain.MigrationRequest{}, err
	}

	toOverrides, err := parseOverrides(to, domain.ErrInvalidToOverride)
	if err != nil {
		return domain.MigrationRequest{}, err
	}

	return domain.MigrationRequest{
		TargetPackage: pkg,
		TargetVersion: version,
		From:          fromOverrides,
		To:            toOverrides,
	}, nil
}

func parseTarget(target, defaultPackage string) (pkg, version string, err error) {
	if target == "" {
		return "", "", domain.ErrInvalidTarget
	}

	if i := strings.LastIndex(target, "@"); i > 0 {
		pkg, version = target[:i], target[i+1:]
		if version == "" {
			return "", "", zerr.With(domain.ErrInvalidTarget, "target", target)
		}
		return pkg, domain.NormalizeVersionOrTag(version), nil
	}

	if domain.IsVersionLike(target) || target == latestTag || target == "next" {
		return defaultPackage, domain.NormalizeVersionOrTag(target), nil
	}
	return target, latestTag, nil
}

func parseOverrides(raw string, invalid error) (map[string]string, error) {
	overrides := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return overrides, nil
	}

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		i := strings.LastIndex(entry, "@")
		if i <= 0 || i == len(entry)-1 {
			return nil, zerr.With(invalid, "entry", entry)
		}
		overrides[entry[:i]] = domain.NormalizeVersionOrTag(entry[i+1:])
	}
	return overrides, nil
}

package domain

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is a canonical major.minor.patch[-prerelease] version.
// The zero value is 0.0.0.
type Version struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease string
}

// NewVersion creates a Version from its components.
func NewVersion(major, minor, patch uint64, prerelease string) Version {
	return Version{Major: major, Minor: minor, Patch: patch, Prerelease: prerelease}
}

// CoerceVersion turns an arbitrary version-like string into a Version.
// It never fails: inputs that cannot be read degrade to the longest valid prefix,
// and to 0.0.0 when not even the major component is a number.
func CoerceVersion(raw string) Version {
	core, suffix, hasSuffix := strings.Cut(strings.TrimSpace(raw), "-")
	segments := strings.Split(core, ".")

	major, ok := parseSegment(segments, 0)
	if !ok {
		return Version{}
	}

	minor, ok := parseSegment(segments, 1)
	if !ok {
		return Version{Major: major}
	}

	patch, ok := parseSegment(segments, 2)
	if !ok {
		return Version{Major: major, Minor: minor}
	}

	v := Version{Major: major, Minor: minor, Patch: patch}
	if !hasSuffix {
		return v
	}

	prerelease, _, _ := strings.Cut(suffix, "-")
	if prerelease != "" && validPrerelease(prerelease) {
		v.Prerelease = prerelease
	}
	return v
}

// parseSegment reads the dot segment at index i. Missing or empty segments read as 0.
// The first segment is mandatory.
func parseSegment(segments []string, i int) (uint64, bool) {
	if i >= len(segments) || segments[i] == "" {
		return 0, i > 0
	}

	s := segments[i]
	if len(s) > 1 && s[0] == '0' {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func validPrerelease(prerelease string) bool {
	_, err := semver.StrictNewVersion("0.0.0-" + prerelease)
	return err == nil
}

// IsVersionLike reports whether a user-supplied value should be read as a version
// rather than a dist-tag such as "latest" or "next".
func IsVersionLike(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// NormalizeVersionOrTag coerces version-like values and returns dist-tags untouched.
func NormalizeVersionOrTag(s string) string {
	s = strings.TrimSpace(s)
	if IsVersionLike(s) {
		return CoerceVersion(s).String()
	}
	return s
}

func (v Version) semver() *semver.Version {
	return semver.New(v.Major, v.Minor, v.Patch, v.Prerelease, "")
}

// Compare returns -1, 0 or 1 depending on whether v is lower than, equal to or greater than o.
func (v Version) Compare(o Version) int {
	return v.semver().Compare(o.semver())
}

// LessThan reports whether v < o.
func (v Version) LessThan(o Version) bool {
	return v.Compare(o) < 0
}

// AtLeast reports whether v >= o.
func (v Version) AtLeast(o Version) bool {
	return v.Compare(o) >= 0
}

// String returns the canonical form, e.g. "1.2.3" or "1.2.3-beta.1".
func (v Version) String() string {
	return v.semver().String()
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Input is coerced, never rejected.
func (v *Version) UnmarshalText(text []byte) error {
	*v = CoerceVersion(string(text))
	return nil
}

// MaxVersion returns the greater of a and b.
func MaxVersion(a, b Version) Version {
	if a.LessThan(b) {
		return b
	}
	return a
}

// Crosses reports whether a threshold lies in the half-open range (installed, target].
// A threshold in that range is owed by an upgrade from installed to target.
func Crosses(installed, threshold, target Version) bool {
	return installed.LessThan(threshold) && !target.LessThan(threshold)
}

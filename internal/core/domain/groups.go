package domain

// PackageGroups maps the head of a release group to the companion packages
// that are always released with it at the same version.
type PackageGroups map[string][]string

// DefaultPackageGroup is the head package used when a request only names a version.
const DefaultPackageGroup = "@nrwl/workspace"

// DefaultPackageGroups returns the built-in release groups.
func DefaultPackageGroups() PackageGroups {
	return PackageGroups{
		DefaultPackageGroup: {
			"@nrwl/angular",
			"@nrwl/cypress",
			"@nrwl/eslint-plugin-nx",
			"@nrwl/express",
			"@nrwl/jest",
			"@nrwl/linter",
			"@nrwl/nest",
			"@nrwl/next",
			"@nrwl/node",
			"@nrwl/nx-cloud",
			"@nrwl/nx-plugin",
			"@nrwl/react",
			"@nrwl/storybook",
			"@nrwl/tao",
			"@nrwl/web",
		},
	}
}

// Companions returns the companions of head, or nil when head leads no group.
func (g PackageGroups) Companions(head string) []string {
	return g[head]
}

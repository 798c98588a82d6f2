package domain

// MigrationRequest is a parsed request to upgrade TargetPackage to TargetVersion.
type MigrationRequest struct {
	TargetPackage string
	// TargetVersion is either a canonical version or a dist-tag such as "latest".
	TargetVersion string
	// From pins installed versions, overriding what the workspace reports.
	From map[string]string
	// To pins target versions, overriding what update buckets request.
	To map[string]string
}

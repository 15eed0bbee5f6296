// Package version holds build metadata stamped in via -ldflags.
package version

//nolint:revive // Set at build time.
var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"
	// Commit is the git revision the binary was built from.
	Commit = "unknown"
)

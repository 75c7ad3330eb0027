// Package version holds build metadata stamped into the agentdex binary via
// ldflags; main logs these at startup.
package version

//nolint:revive // Overwritten by -ldflags "-X ..." at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Package version carries build metadata stamped by the linker.
package version

// Populated via LDFLAGS at build time; see the magefile.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Package buildinfo carries release metadata stamped into the binary.
package buildinfo

// Injected via -ldflags at release time; empty for local/dev builds,
// which then fall back to module build info.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

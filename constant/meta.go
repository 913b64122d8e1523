// Package constant defines immutable application-level identifiers and playback defaults.
package constant

const (
	// Grauman is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	Grauman = "grauman"

	// Version is the current application semantic version string.
	Version = "0.1.0"
)

// Build metadata, overridden through -ldflags at release time.
var (
	Revision = "unknown"
	BuiltAt  = ""
	BuiltBy  = "source"
)

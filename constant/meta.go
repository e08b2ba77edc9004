// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Lyra is the canonical application identifier used for filesystem paths and CLI branding.
	Lyra = "lyra"

	// Version is the current application semantic version string.
	Version = "0.1.0"
)

// Package buildinfo holds version metadata stamped at build time.
package buildinfo

var (
	// Version is set via ldflags, e.g. -X .../buildinfo.Version=v1.2.3.
	Version = "dev"
	// Commit is set via ldflags.
	Commit = "none"
	// Date is set via ldflags.
	Date = "unknown"
)

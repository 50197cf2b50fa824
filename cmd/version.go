// Package cmd contains build-time variables injected via ldflags.
package cmd

import "fmt"

// Build-time variables set via ldflags.
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

// VersionString returns the one-line version banner.
func VersionString() string {
	return fmt.Sprintf("ulink-setup version %s", Version)
}

// Package version carries the build identity injected via -ldflags.
package version

import "fmt"

var (
	// Version is the release tag, set with
	// -ldflags "-X github.com/bigeen/site/internal/version.Version=v1.2.3".
	Version = "dev"

	// Commit is the git short hash of the build.
	Commit = "unknown"

	// Date is the build timestamp.
	Date = "unknown"
)

// String formats the build identity for -version output.
func String() string {
	return fmt.Sprintf("bigeen %s (commit %s, built %s)", Version, Commit, Date)
}

// Package version carries build information stamped via -ldflags.
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the full human-readable version line.
func String() string {
	return fmt.Sprintf("pkgforge %s (commit %s, built %s)", Version, Commit, Date)
}

package version

import "fmt"

// Set at build time through -ldflags "-X".
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Summary returns the version followed by the short commit when one was stamped.
func Summary() string {
	if CommitHash == "" || CommitHash == "unknown" {
		return Version
	}
	commit := CommitHash
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", Version, commit)
}

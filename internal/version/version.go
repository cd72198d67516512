package version

import "fmt"

// Version is the application version. Release builds set it with
// -ldflags "-X git.home.luguber.info/inful/zimsite/internal/version.Version=v1.2.0".
var Version = "unknown"

// Build metadata, set the same way as Version.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version line printed by --version.
func String() string {
	return fmt.Sprintf("zimsite %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}

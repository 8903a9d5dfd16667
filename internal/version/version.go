package version

import "fmt"

// Set at build time with -ldflags "-X github.com/helpdesk/helpdesk/internal/version.Version=..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns the version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns the version with commit and build date, as logged at startup
func GetFullVersion() string {
	if Version == "dev" {
		return fmt.Sprintf("dev (commit: %s)", Commit)
	}
	return fmt.Sprintf("%s (commit: %s, built %s)", Version, Commit, BuildDate)
}

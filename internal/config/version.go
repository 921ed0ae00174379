package config

// Build metadata, set with -ldflags "-X github.com/failsafe-org/safeguard-cli/internal/config.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// SetBuildFlags overrides the build metadata
func SetBuildFlags(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
}

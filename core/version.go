package core

// Build metadata, injected with
//
//	go build -ldflags "-X droppables/core.Version=$(git describe --tags --always) -X droppables/core.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo returns the version with its build time and commit, e.g.
// "v1.2.0 (built 2026-01-15T10:30:00Z, commit abc1234)".
func VersionInfo() string {
	return Version + " (built " + BuildTime + ", commit " + GitCommit + ")"
}

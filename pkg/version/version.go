// Package version carries the build information of the podded binary.
package version

import "fmt"

// Set via ldflags at release time:
// -X 'github.com/podded/podded/pkg/version.Version=1.0.0'
// -X 'github.com/podded/podded/pkg/version.CommitHash=abc123'
// -X 'github.com/podded/podded/pkg/version.BuildDate=2026-01-01T00:00:00Z'
var (
	// Version is the semantic version of the binary, without a leading v
	Version = "1.0.0"
	// CommitHash is the git commit hash used to build the binary
	CommitHash = "unknown"
	// BuildDate is the timestamp when the binary was built (RFC3339 format)
	BuildDate = "unknown"
)

// Info returns build information in a structured format
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildDate  string `json:"build_date"`
}

func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildDate:  BuildDate,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("podded %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildDate)
}

// UserAgent identifies podded to the update endpoint.
func UserAgent() string {
	return "podded/" + Version
}

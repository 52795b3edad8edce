// Package buildinfo holds the version stamped into the dominochain binary.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/dominochain/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/dominochain/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/dominochain/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/dominochain
//
// Plain "go build" and "go install" leave the defaults below.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Fields returns the build as key-value pairs for structured log lines.
func Fields() []any {
	return []any{"version", Version, "commit", Commit, "built", Date}
}

// Template is the output of "dominochain --version".
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

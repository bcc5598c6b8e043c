package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version of the candid tooling
	Version = "0.3.0"

	// DataFormatVersion tracks the layout of the cleaned and prepared CSVs.
	// Bump it whenever a column is added, renamed or reordered.
	DataFormatVersion = "v1"
)

// Set with -ldflags at release time.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// BuildString describes the binary for --version output
func BuildString() string {
	return fmt.Sprintf("candid v%s (data %s, commit %s, built %s, %s %s/%s)",
		Version, DataFormatVersion, GitCommit, BuildTime,
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

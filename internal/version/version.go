// Package version reports build information for the schemadelta binary
package version

import (
	_ "embed"
	"fmt"
	"runtime"
	"strings"
)

//go:embed VERSION
var versionFile string

// Build-time variables set via ldflags
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Version returns the release version
func Version() string {
	return strings.TrimSpace(versionFile)
}

// Platform returns the OS/architecture combination
func Platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// String returns the one-line banner printed by the version command
func String() string {
	return fmt.Sprintf("schemadelta v%s@%s %s %s", Version(), GitCommit, Platform(), BuildDate)
}

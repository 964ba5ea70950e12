// Package version holds build information for the basebase binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is the release version, set at build time with
//
//	-ldflags "-X github.com/basebase-ai/basebase-go/internal/version.Version=1.2.3"
var Version = "0.1.0-dev"

// GitCommit is the commit the binary was built from, when known.
var GitCommit = ""

// FullVersion returns the version with the commit suffix, falling back to
// the VCS revision recorded by the Go toolchain.
func FullVersion() string {
	commit := GitCommit
	if commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					commit = s.Value
				}
			}
		}
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if commit == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, commit)
}

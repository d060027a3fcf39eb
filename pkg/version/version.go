// Package version exposes build metadata injected at link time.
package version

import "runtime/debug"

// Set via -ldflags "-X github.com/rshade/ecotrack/pkg/version.version=...".
//
//nolint:gochecknoglobals // Link-time variables.
var (
	version   = ""
	gitCommit = ""
	buildDate = ""
)

const devVersion = "dev"

// GetVersion returns the release version, the module version recorded by
// "go install", or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return devVersion
}

// GetGitCommit returns the commit the binary was built from, if known.
func GetGitCommit() string {
	if gitCommit != "" {
		return gitCommit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}

// GetBuildDate returns the build timestamp, if known.
func GetBuildDate() string {
	if buildDate != "" {
		return buildDate
	}
	return "unknown"
}

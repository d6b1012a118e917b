// Package version describes the running aurora build.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/Chiitoi/Aurora/internal/version.Commit=..."
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info identifies a build. The stats API reports it from /health.
type Info struct {
	Commit    string `json:"commit"`
	BuildTime string `json:"built"`
	Modified  bool   `json:"modified,omitempty"`
}

// Get returns the build info. Linker-set values win; otherwise the VCS
// stamp the go tool embeds is used when present.
func Get() Info {
	info := Info{Commit: Commit, BuildTime: BuildTime}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromSettings(&info, bi.Settings)
	}
	info.Commit = abbreviate(info.Commit)
	return info
}

func fillFromSettings(info *Info, settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "unknown" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
}

// String formats the info for the CLI banner.
func (i Info) String() string {
	s := fmt.Sprintf("aurora %s (built %s)", i.Commit, i.BuildTime)
	if i.Modified {
		s += " +modified"
	}
	return s
}

// String is shorthand for Get().String().
func String() string {
	return Get().String()
}

func abbreviate(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}

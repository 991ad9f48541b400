// Package version holds the build metadata reported by the server.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/pandeptwidyaop/webretro-server/internal/version.Version=v1.2.3".
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// BuildInfo is the payload of the version endpoint.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
}

// Info returns the build metadata. When no commit was injected at link time
// the VCS revision stamped by the Go toolchain is used instead.
func Info() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
	}
	if info.GitCommit == "unknown" {
		if rev := vcsRevision(); rev != "" {
			info.GitCommit = rev
		}
	}
	return info
}

// String formats the build metadata for the version command.
func String() string {
	info := Info()
	return fmt.Sprintf("WebRetro Server %s\nBuild Time: %s\nGit Commit: %s\nGo: %s",
		info.Version, info.BuildTime, info.GitCommit, info.GoVersion)
}

func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

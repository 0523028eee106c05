// Package buildinfo holds build-time metadata injected through -ldflags,
// separate from user configuration.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const unknown = "unknown"

// Set with -ldflags "-X github.com/tphakala/video-enrichment-api/internal/buildinfo.version=..."
var (
	version   = ""
	buildDate = ""
	commit    = ""
)

// Info describes the running binary
type Info struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build metadata. Values missing from ldflags fall back to
// the module version and VCS settings embedded by the Go toolchain.
func Get() Info {
	info := Info{
		Version:   version,
		BuildDate: buildDate,
		Commit:    commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}

	if info.Version == "" {
		info.Version = unknown
	}
	if info.BuildDate == "" {
		info.BuildDate = unknown
	}
	if info.Commit == "" {
		info.Commit = unknown
	}
	return info
}

// fillFromBuildInfo only sets fields that are still empty
func fillFromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = shortCommit(s.Value)
			}
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		}
	}
}

func shortCommit(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// Version returns the version string alone
func Version() string {
	return Get().Version
}

// String renders the info on one line for the version command
func (i Info) String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s %s)", i.Version, i.Commit, i.BuildDate, i.GoVersion, i.Platform)
}

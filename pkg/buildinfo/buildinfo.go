// Package buildinfo contains build information.
//
// The version suffix of development builds can be set during compilation by
// passing -ldflags "-X src.rtio.sh/pkg/buildinfo.VersionSuffix=value" to
// "go build".
package buildinfo

import (
	"runtime"
	"runtime/debug"
	"strings"
)

// VersionBase identifies the version of rtio. On development commits, it
// identifies the next release.
const VersionBase = "0.1.0"

// VersionSuffix is appended to VersionBase in development builds. When it is
// empty, it is derived from the VCS information in the binary.
var VersionSuffix = ""

// Info describes a build.
type Info struct {
	Version   string
	GoVersion string
}

// Value contains the build information of the running binary.
var Value = value(VersionSuffix, debug.ReadBuildInfo)

func value(suffix string, read func() (*debug.BuildInfo, bool)) Info {
	return Info{Version: version(suffix, read), GoVersion: runtime.Version()}
}

func version(suffix string, read func() (*debug.BuildInfo, bool)) string {
	bi, ok := read()
	if ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		// Built as a module dependency with "go install", which records the
		// module version.
		return strings.TrimPrefix(bi.Main.Version, "v")
	}
	if suffix != "" {
		return VersionBase + suffix
	}
	if ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 12 {
				return VersionBase + "-dev." + s.Value[:12]
			}
		}
	}
	return VersionBase + "-dev.unknown"
}

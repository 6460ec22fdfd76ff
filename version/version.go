package version

import (
	"runtime/debug"
	"strings"
)

// ModulePath is the import path of the fuel module.
const ModulePath = "github.com/kbukum/fuel"

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Get returns the fuel version. An ldflags-provided Version wins; otherwise
// the version of the fuel module recorded in the binary's build info is used
// when fuel is a dependency. Falls back to "dev".
func Get() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}
	if info.Main.Path == ModulePath && isTagged(info.Main.Version) {
		return strings.TrimPrefix(info.Main.Version, "v")
	}
	for _, dep := range info.Deps {
		if dep.Path == ModulePath && isTagged(dep.Version) {
			return strings.TrimPrefix(dep.Version, "v")
		}
	}
	return "dev"
}

// Short returns Get with the git commit appended when known.
func Short() string {
	v := Get()
	if GitCommit == "" {
		return v
	}
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return v + "-" + commit
}

// UserAgent returns the default User-Agent header value, "fuel/<version>".
func UserAgent() string {
	return "fuel/" + Get()
}

func isTagged(v string) bool {
	return v != "" && v != "(devel)"
}

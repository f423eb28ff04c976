// Package buildinfo exposes version metadata stamped at build time.
//
// Release builds overwrite the variables with ldflags, e.g.
//
//	go build -ldflags "-X github.com/kochwerk/kochwerk/pkg/buildinfo.Version=v1.0.0"
//
// Without ldflags the package falls back to module build info embedded
// by the toolchain, so `go install` binaries still report a commit.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Set via ldflags; see the package comment.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	if Commit != "none" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, kv := range info.Settings {
		switch kv.Key {
		case "vcs.revision":
			Commit = kv.Value
		case "vcs.time":
			Date = kv.Value
		}
	}
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// Package build carries the tool version.
package build

import (
	"github.com/maloquacious/semver"
)

var (
	version = semver.Version{
		Major: 0,
		Minor: 3,
		Patch: 0,
		Build: semver.Commit(),
	}
)

// Version returns the full tool version, including build metadata when the
// binary was built from a VCS checkout.
func Version() semver.Version {
	return version
}

// Short returns the version without build metadata.
func Short() string {
	return version.Core()
}

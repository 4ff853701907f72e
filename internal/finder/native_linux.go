//go:build linux

package finder

import "runtime"

// Native returns the conventions of the running OS.
func Native() PlatformConventions { return Linux{Arch: runtime.GOARCH} }

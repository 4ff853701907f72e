//go:build windows

package finder

// Native returns the conventions of the running OS.
func Native() PlatformConventions { return Windows{} }

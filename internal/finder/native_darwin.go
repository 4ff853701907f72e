//go:build darwin

package finder

// Native returns the conventions of the running OS.
func Native() PlatformConventions { return Darwin{} }

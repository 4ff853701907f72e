//go:build !linux && !darwin && !windows

package finder

// Native returns the conventions of the running OS. Other unixes share the
// ELF naming and loader variable with Linux but have no known system dirs.
func Native() PlatformConventions { return otherUnix{} }

type otherUnix struct{ Linux }

func (otherUnix) Name() string         { return "unix" }
func (otherUnix) SystemDirs() []string { return nil }

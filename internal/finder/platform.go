package finder

import "strings"

// PlatformConventions captures the per-OS rules the finder needs: how a
// logical library name maps to a file, which variable holds the loader
// search path, and where OpenVINO trees place their libraries.
type PlatformConventions interface {
	// Name is a short identifier such as "linux".
	Name() string
	// FileName maps a logical name like "openvino_c" to the on-disk file.
	FileName(name string) string
	// LibraryPathVar is the environment variable consulted by the OS loader.
	LibraryPathVar() string
	// ListSeparator splits LibraryPathVar entries.
	ListSeparator() string
	// BuildSubdirs are relative library locations inside a source build tree.
	BuildSubdirs() []string
	// InstallSubdirs are relative library locations inside an install tree.
	InstallSubdirs() []string
	// SystemDirs are probed directly for package-manager installs.
	SystemDirs() []string
	// DefaultRoots are install trees probed with InstallSubdirs.
	DefaultRoots() []string
}

var (
	buildSubdirs = []string{
		"bin/intel64/Debug/lib",
		"bin/intel64/Release/lib",
		"temp/tbb/lib",
	}
	installSubdirs = []string{
		"runtime/lib/intel64",
		"runtime/3rdparty/tbb/lib",
	}
	unixDefaultRoots = []string{
		"/opt/intel/openvino_2022",
		"/opt/intel/openvino",
	}
)

// Linux follows ELF naming (libX.so) and LD_LIBRARY_PATH.
type Linux struct {
	// Arch selects the multiarch system directories; empty means amd64.
	Arch string
}

func (Linux) Name() string { return "linux" }
func (Linux) FileName(name string) string { return "lib" + name + ".so" }
func (Linux) LibraryPathVar() string { return "LD_LIBRARY_PATH" }
func (Linux) ListSeparator() string { return ":" }
func (Linux) BuildSubdirs() []string { return clone(buildSubdirs) }
func (Linux) InstallSubdirs() []string { return clone(installSubdirs) }
func (Linux) DefaultRoots() []string { return clone(unixDefaultRoots) }

// SystemDirs lists where DEB and RPM packages (2022.3 and later) install.
func (l Linux) SystemDirs() []string {
	triple := "x86_64-linux-gnu"
	if l.Arch == "arm64" {
		triple = "aarch64-linux-gnu"
	}
	return []string{
		"/usr/lib/" + triple,
		"/lib/" + triple,
		"/usr/lib64",
	}
}

// Darwin follows Mach-O naming (libX.dylib) and DYLD_LIBRARY_PATH.
type Darwin struct{}

func (Darwin) Name() string { return "darwin" }
func (Darwin) FileName(name string) string { return "lib" + name + ".dylib" }
func (Darwin) LibraryPathVar() string { return "DYLD_LIBRARY_PATH" }
func (Darwin) ListSeparator() string { return ":" }
func (Darwin) BuildSubdirs() []string { return clone(buildSubdirs) }
func (Darwin) InstallSubdirs() []string { return clone(installSubdirs) }
func (Darwin) SystemDirs() []string { return nil }
func (Darwin) DefaultRoots() []string { return clone(unixDefaultRoots) }

// Windows uses X.dll, PATH, and the bin/ half of the bin/lib split.
type Windows struct{}

func (Windows) Name() string { return "windows" }
func (Windows) FileName(name string) string { return name + ".dll" }
func (Windows) LibraryPathVar() string { return "PATH" }
func (Windows) ListSeparator() string { return ";" }

func (Windows) BuildSubdirs() []string {
	return append(clone(buildSubdirs), "bin/intel64/Debug", "bin/intel64/Release")
}

func (Windows) InstallSubdirs() []string {
	return []string{
		"runtime/bin/intel64/Release",
		"runtime/bin/intel64/Debug",
		"runtime/3rdparty/tbb/bin",
		"runtime/lib/intel64",
	}
}

func (Windows) SystemDirs() []string { return nil }

func (Windows) DefaultRoots() []string {
	return []string{
		`C:\Program Files (x86)\Intel\openvino_2022`,
		`C:\Program Files (x86)\Intel\openvino`,
	}
}

// ForName returns the conventions registered under name, falling back to
// the native ones for an empty or unknown name.
func ForName(name string) PlatformConventions {
	switch strings.ToLower(name) {
	case "linux":
		return Linux{}
	case "darwin", "macos":
		return Darwin{}
	case "windows":
		return Windows{}
	default:
		return Native()
	}
}

func clone(s []string) []string { return append([]string(nil), s...) }

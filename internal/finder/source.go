package finder

// Source identifies where a probed directory came from. Sources are tried
// in declaration order and the first hit wins.
type Source int

const (
	SourceBuildDir Source = iota
	SourceInstallDir
	SourceIntelDir
	SourceLibraryPath
	SourceSystemDir
	SourceDefaultDir
)

// Environment variables consulted by the finder.
const (
	EnvBuildDir   = "OPENVINO_BUILD_DIR"
	EnvInstallDir = "OPENVINO_INSTALL_DIR"
	EnvIntelDir   = "INTEL_OPENVINO_DIR"
	EnvPluginsXML = "OPENVINO_PLUGINS_XML"
)

func (s Source) String() string {
	switch s {
	case SourceBuildDir:
		return "build_dir"
	case SourceInstallDir:
		return "install_dir"
	case SourceIntelDir:
		return "intel_dir"
	case SourceLibraryPath:
		return "library_path"
	case SourceSystemDir:
		return "system_dir"
	case SourceDefaultDir:
		return "default_dir"
	default:
		return "unknown"
	}
}

// Candidate is one directory the finder probes.
type Candidate struct {
	Source Source
	Dir    string
}

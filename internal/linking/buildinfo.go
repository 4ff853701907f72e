package linking

import (
	"strconv"

	"ovlink/internal/finder"
)

// Stamped at build time, e.g.
//
//	go build -ldflags "-X ovlink/internal/linking.buildLinkMode=build \
//	  -X ovlink/internal/linking.buildLibraryPath=/opt/intel/openvino/runtime/lib/intel64/libopenvino_c.so"
var (
	buildLinkMode    string
	buildLibraryPath string
	buildSkipLink    string
)

// BuildSettings describes how this binary was configured to link.
type BuildSettings struct {
	Mode        LinkMode `json:"mode"`
	LibraryPath string   `json:"library_path,omitempty"`
	SkipLink    bool     `json:"skip_link"`
	// CgoLinked is set when the binary was linked against openvino_c with
	// the ovlink_dynamic tag.
	CgoLinked bool `json:"cgo_linked"`
}

// BuildDefaults returns the link settings stamped into the binary. A cgo
// linked build defaults to BuildTime mode against the already mapped image.
func BuildDefaults() BuildSettings {
	s := BuildSettings{
		LibraryPath: buildLibraryPath,
		SkipLink:    skipLinkTag,
		CgoLinked:   cgoLinked,
	}
	if v, err := strconv.ParseBool(buildSkipLink); err == nil && v {
		s.SkipLink = true
	}
	if m, err := ParseLinkMode(buildLinkMode); err == nil {
		s.Mode = m
	}
	if cgoLinked {
		s.Mode = BuildTime
		if s.LibraryPath == "" {
			s.LibraryPath = finder.Native().FileName(finder.LibraryC)
		}
	}
	return s
}

package ovsys

import (
	"fmt"
	"runtime"
	"unsafe"

	"ovlink/internal/linking"
	"ovlink/pkg/types"
)

// ovVersion mirrors ov_version_t from openvino/c/ov_common.h.
type ovVersion struct {
	BuildNumber *byte
	Description *byte
}

// VersionOf asks lib for its build number via ov_get_openvino_version.
func VersionOf(lib *linking.Library) (string, error) {
	v := new(ovVersion)
	var pin runtime.Pinner
	pin.Pin(v)
	defer pin.Unpin()

	status, err := lib.Call("ov_get_openvino_version", uintptr(unsafe.Pointer(v)))
	if err != nil {
		return "", err
	}
	if code := int32(status); code != 0 {
		return "", fmt.Errorf("ov_get_openvino_version: status %d", code)
	}
	out := cString(v.BuildNumber)
	if _, err := lib.Call("ov_version_free", uintptr(unsafe.Pointer(v))); err != nil {
		return out, err
	}
	return out, nil
}

// cString copies a NUL-terminated C string.
func cString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// Report summarizes b for the CLI and HTTP diagnostics. withVersion asks a
// bound library for its build number.
func Report(b *linking.Binder, withVersion bool) types.BindStatus {
	st := b.Status()
	build := linking.BuildDefaults()
	out := types.BindStatus{
		State:     st.State.String(),
		Mode:      st.Mode.String(),
		Library:   st.Name,
		Path:      st.Path,
		Symbols:   st.Symbols,
		SkipLink:  st.SkipLink,
		ErrorKind: ErrorKind(st.Err),
		Build: types.BuildInfo{
			Mode:        build.Mode.String(),
			LibraryPath: build.LibraryPath,
			SkipLink:    build.SkipLink,
			CgoLinked:   build.CgoLinked,
		},
	}
	if st.Err != nil {
		out.Error = st.Err.Error()
	}
	if withVersion {
		if lib, ok := b.Library(); ok {
			if v, err := VersionOf(lib); err == nil {
				out.Version = v
			}
		}
	}
	return out
}

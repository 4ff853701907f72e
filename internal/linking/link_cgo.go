//go:build ovlink_dynamic && cgo

package linking

// Linking against openvino_c at build time maps the image at process start;
// the BuildTime bind then resolves symbols from that same mapping. Point
// CGO_LDFLAGS at the install tree, e.g. -L$INTEL_OPENVINO_DIR/runtime/lib/intel64.

/*
#cgo linux LDFLAGS: -Wl,-rpath,'$ORIGIN' -lopenvino_c
#cgo darwin LDFLAGS: -Wl,-rpath,@loader_path -lopenvino_c
#cgo windows LDFLAGS: -lopenvino_c
*/
import "C"

const cgoLinked = true

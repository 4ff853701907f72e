//go:build (darwin || freebsd || linux) && (amd64 || arm64)

package linking

import (
	"errors"

	"github.com/ebitengine/purego"
)

type systemLoader struct{}

// Open loads eagerly so unresolved transitive dependencies fail here rather
// than on the first call.
func (systemLoader) Open(path string) (uintptr, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, err
	}
	if h == 0 {
		return 0, errors.New("dlopen returned a null handle")
	}
	return h, nil
}

func (systemLoader) Sym(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func (systemLoader) Close(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return purego.Dlclose(handle)
}

func (systemLoader) Call(fn uintptr, args ...uintptr) uintptr {
	r1, _, _ := purego.SyscallN(fn, args...)
	return r1
}

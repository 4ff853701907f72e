//go:build windows

package linking

import (
	"syscall"

	"golang.org/x/sys/windows"
)

type systemLoader struct{}

// Open lets the DLL's own directory satisfy its dependencies (tbb, plugins).
func (systemLoader) Open(path string) (uintptr, error) {
	h, err := windows.LoadLibraryEx(path, 0, windows.LOAD_WITH_ALTERED_SEARCH_PATH)
	if err != nil {
		return 0, err
	}
	return uintptr(h), nil
}

func (systemLoader) Sym(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}

func (systemLoader) Close(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return windows.FreeLibrary(windows.Handle(handle))
}

func (systemLoader) Call(fn uintptr, args ...uintptr) uintptr {
	r1, _, _ := syscall.SyscallN(fn, args...)
	return r1
}

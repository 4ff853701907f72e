package linking

// Loader abstracts the OS dynamic loader and the native calling convention.
// Handles and addresses are opaque to callers outside this package.
type Loader interface {
	Open(path string) (uintptr, error)
	Sym(handle uintptr, name string) (uintptr, error)
	Close(handle uintptr) error
	// Call invokes the C function at fn with integer or pointer arguments
	// and returns the first result register.
	Call(fn uintptr, args ...uintptr) uintptr
}

// SystemLoader returns the loader for the running OS.
func SystemLoader() Loader { return systemLoader{} }

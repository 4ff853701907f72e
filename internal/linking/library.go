package linking

import (
	"sort"
	"sync"

	"ovlink/internal/metrics"
)

// SymbolTable is a read-only view of resolved entry points. It is only
// handed out inside Library.Use, while the owning handle is pinned.
type SymbolTable struct {
	m map[string]uintptr
}

// Addr returns the address of name. Addresses must not outlive the Use
// callback that produced the table.
func (t SymbolTable) Addr(name string) (uintptr, bool) {
	a, ok := t.m[name]
	return a, ok
}

// Len reports the number of resolved symbols.
func (t SymbolTable) Len() int { return len(t.m) }

// Library owns a loaded image and every address resolved from it. All native
// calls go through it; Close waits for in-flight calls and afterwards every
// method reports ErrUnbound.
type Library struct {
	path   string
	loader Loader

	mu     sync.RWMutex
	handle uintptr
	table  map[string]uintptr
	closed bool

	// onClose runs once, after the handle is released.
	onClose func(*Library)
}

func newLibrary(path string, loader Loader, handle uintptr, table map[string]uintptr) *Library {
	return &Library{path: path, loader: loader, handle: handle, table: table}
}

// Path is the file the image was loaded from.
func (l *Library) Path() string { return l.path }

// Symbols returns the resolved symbol names, sorted. Empty after Close.
func (l *Library) Symbols() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.table))
	for n := range l.table {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name was resolved and the library is still bound.
func (l *Library) Has(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.table[name]
	return ok && !l.closed
}

// Call invokes the named entry point with the given arguments and returns
// its first result register. Only names from the bind manifest are callable.
func (l *Library) Call(name string, args ...uintptr) (uintptr, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return 0, ErrUnbound
	}
	fn, ok := l.table[name]
	if !ok {
		return 0, &SymbolError{Name: name, Path: l.path}
	}
	return l.loader.Call(fn, args...), nil
}

// Use runs fn with the symbol table while holding the handle open. It is the
// hook for generated bindings that need raw addresses, e.g. for
// purego.RegisterFunc; nothing derived from the table may be kept after fn
// returns.
func (l *Library) Use(fn func(SymbolTable) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrUnbound
	}
	return fn(SymbolTable{m: l.table})
}

// Closed reports whether the handle has been released.
func (l *Library) Closed() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.closed
}

// Close releases the OS handle and returns the owning Binder to
// StateUnbound. Calling it again is a no-op.
func (l *Library) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.table = nil
	h := l.handle
	l.handle = 0
	err := l.loader.Close(h)
	l.mu.Unlock()

	metrics.ObserveUnload()
	if l.onClose != nil {
		l.onClose(l)
	}
	return err
}

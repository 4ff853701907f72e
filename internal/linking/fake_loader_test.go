package linking

import (
	"errors"
	"sync"
	"sync/atomic"

	"ovlink/internal/finder"
)

// fakeLoader serves in-memory images keyed by path and counts every
// open and close so tests can assert that nothing leaks.
type fakeLoader struct {
	mu     sync.Mutex
	images map[string][]string
	live   map[uintptr]string
	next   uintptr
	opens  int
	closes int

	// gate, when set, blocks Open until closed.
	gate chan struct{}
	// onCall, when set, runs inside Call.
	onCall func(fn uintptr, args []uintptr) uintptr
	// panicSym makes Sym panic when asked for that name.
	panicSym string
}

func newFakeLoader(images map[string][]string) *fakeLoader {
	return &fakeLoader{images: images, live: map[uintptr]string{}, next: 0x1000}
}

func (f *fakeLoader) Open(path string) (uintptr, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens++
	if _, ok := f.images[path]; !ok {
		return 0, errors.New(path + ": cannot open shared object file: No such file or directory")
	}
	f.next += 0x1000
	f.live[f.next] = path
	return f.next, nil
}

func (f *fakeLoader) Sym(h uintptr, name string) (uintptr, error) {
	if name == f.panicSym {
		panic("dlsym crashed on " + name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	path, ok := f.live[h]
	if !ok {
		return 0, errors.New("invalid handle")
	}
	for i, s := range f.images[path] {
		if s == name {
			return h + uintptr(i+1)*8, nil
		}
	}
	return 0, errors.New("undefined symbol: " + name)
}

func (f *fakeLoader) Close(h uintptr) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	if _, ok := f.live[h]; !ok {
		return errors.New("double close")
	}
	delete(f.live, h)
	return nil
}

func (f *fakeLoader) Call(fn uintptr, args ...uintptr) uintptr {
	if f.onCall != nil {
		return f.onCall(fn, args)
	}
	return fn
}

func (f *fakeLoader) counts() (opens, closes, live int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens, f.closes, len(f.live)
}

// countingLocator returns a fixed answer and counts calls.
type countingLocator struct {
	path  string
	err   error
	calls atomic.Int32
}

func (l *countingLocator) Find(string) (string, error) {
	l.calls.Add(1)
	return l.path, l.err
}

var _ finder.Locator = (*countingLocator)(nil)

func without(list []string, drop string) []string {
	var out []string
	for _, s := range list {
		if s != drop {
			out = append(out, s)
		}
	}
	return out
}

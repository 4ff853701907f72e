package linking

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"ovlink/internal/finder"
	"ovlink/internal/metrics"
)

// Options configure a Binder. The zero value binds openvino_c at first use
// through a cached native finder and the system loader.
type Options struct {
	// Name is the logical library name; a value containing a path
	// separator is taken as a file path and bypasses the locator.
	Name string
	// Path fixes the file to load. Required for BuildTime; in
	// RuntimeFirstUse it overrides the locator.
	Path     string
	Mode     LinkMode
	SkipLink bool
	// Manifest lists the symbols every bind must resolve; empty means
	// OpenVINOManifest.
	Manifest []string
	Locator  finder.Locator
	Loader   Loader
	Logger   zerolog.Logger
}

// attempt is one pass out of StateUnbound. Waiters block on done and then
// read lib and err, which are written before done is closed.
type attempt struct {
	done chan struct{}
	lib  *Library
	err  error
	path string
}

// Binder holds the bind state for one logical library. Exactly one load runs
// per attempt however many goroutines call Bind; all of them get the same
// *Library or the same error. A failure is sticky until Unbind or Reset.
type Binder struct {
	opts Options
	log  zerolog.Logger

	mu    sync.Mutex
	state State
	cur   *attempt
}

// NewBinder fills defaults into opts and returns an unbound Binder.
func NewBinder(opts Options) *Binder {
	if opts.Name == "" {
		opts.Name = finder.LibraryC
	}
	if opts.Loader == nil {
		opts.Loader = SystemLoader()
	}
	if opts.Locator == nil {
		opts.Locator = finder.NewCache(finder.New(finder.WithLogger(opts.Logger)))
	}
	opts.Manifest = manifestOrDefault(opts.Manifest)
	return &Binder{opts: opts, log: opts.Logger.With().Str("library", opts.Name).Logger()}
}

// Mode reports the configured link mode.
func (b *Binder) Mode() LinkMode { return b.opts.Mode }

// Bind returns the bound library, loading it on the first call.
func (b *Binder) Bind() (*Library, error) {
	if b.opts.SkipLink {
		metrics.ObserveBind("skipped", 0)
		return nil, ErrLinkSkipped
	}
	b.mu.Lock()
	if a := b.cur; a != nil {
		b.mu.Unlock()
		<-a.done
		return a.lib, a.err
	}
	a := &attempt{done: make(chan struct{})}
	b.cur = a
	b.state = StateLoading
	b.mu.Unlock()

	start := time.Now()
	a.lib, a.path, a.err = b.load()
	metrics.ObserveBind(resultLabel(a.err), time.Since(start))

	b.mu.Lock()
	if a.err != nil {
		b.state = StateFailed
		b.log.Error().Err(a.err).Str("mode", b.opts.Mode.String()).Msg("bind failed")
	} else {
		b.state = StateBound
		b.log.Info().Str("path", a.path).Int("symbols", len(b.opts.Manifest)).Dur("took", time.Since(start)).Msg("library bound")
	}
	close(a.done)
	b.mu.Unlock()
	return a.lib, a.err
}

// Library returns the bound library without triggering a bind.
func (b *Binder) Library() (*Library, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateBound {
		return nil, false
	}
	return b.cur.lib, true
}

// Unbind releases a bound library and returns the binder to StateUnbound; a
// failed state is cleared too. It waits for an in-progress bind first.
// Every address obtained from the released library becomes invalid.
func (b *Binder) Unbind() error {
	b.mu.Lock()
	a := b.cur
	b.mu.Unlock()
	if a == nil {
		return nil
	}
	<-a.done

	b.mu.Lock()
	if b.cur != a {
		b.mu.Unlock()
		return nil
	}
	b.cur = nil
	b.state = StateUnbound
	b.mu.Unlock()

	if a.lib == nil {
		return nil
	}
	b.log.Info().Str("path", a.path).Msg("library unbound")
	return a.lib.Close()
}

// Reset clears a sticky failure so the next Bind tries again. It reports
// whether there was a failure to clear.
func (b *Binder) Reset() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateFailed {
		return false
	}
	b.cur = nil
	b.state = StateUnbound
	return true
}

// Status is a point-in-time snapshot of a Binder.
type Status struct {
	State    State
	Mode     LinkMode
	Name     string
	Path     string
	Symbols  int
	Err      error
	SkipLink bool
}

// Status reports the current state without blocking on a bind in progress.
func (b *Binder) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := Status{State: b.state, Mode: b.opts.Mode, Name: b.opts.Name, SkipLink: b.opts.SkipLink}
	if b.state == StateBound || b.state == StateFailed {
		s.Path, s.Err = b.cur.path, b.cur.err
		if b.cur.lib != nil {
			s.Symbols = len(b.opts.Manifest)
		}
	}
	return s
}

func (b *Binder) load() (lib *Library, path string, err error) {
	ld := b.opts.Loader
	var h uintptr
	defer func() {
		if r := recover(); r != nil {
			if h != 0 {
				if cerr := ld.Close(h); cerr != nil {
					b.log.Warn().Err(cerr).Str("path", path).Msg("close after loader panic")
				}
			}
			lib = nil
			err = &LoadError{Path: path, Diagnostic: fmt.Sprint("loader panic: ", r)}
		}
	}()

	path, err = b.resolvePath()
	if err != nil {
		return nil, path, err
	}
	b.log.Debug().Str("path", path).Msg("loading library")
	h, err = ld.Open(path)
	if err != nil {
		h = 0
		return nil, path, &LoadError{Path: path, Diagnostic: err.Error()}
	}

	table := make(map[string]uintptr, len(b.opts.Manifest))
	for _, name := range b.opts.Manifest {
		addr, serr := ld.Sym(h, name)
		if serr != nil || addr == 0 {
			closing := h
			h = 0
			if cerr := ld.Close(closing); cerr != nil {
				b.log.Warn().Err(cerr).Str("path", path).Msg("close after missing symbol")
			}
			return nil, path, &SymbolError{Name: name, Path: path}
		}
		table[name] = addr
	}
	lib = newLibrary(path, ld, h, table)
	lib.onClose = b.released
	return lib, path, nil
}

// released returns the binder to StateUnbound when its current library is
// closed directly rather than through Unbind.
func (b *Binder) released(lib *Library) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateBound || b.cur.lib != lib {
		return
	}
	b.cur = nil
	b.state = StateUnbound
	b.log.Info().Str("path", lib.Path()).Msg("library closed")
}

func (b *Binder) resolvePath() (string, error) {
	switch {
	case b.opts.Path != "":
		return b.opts.Path, nil
	case b.opts.Mode == BuildTime:
		return "", &LoadError{Diagnostic: "build-time link mode requires a library path"}
	case strings.ContainsAny(b.opts.Name, `/\`) || filepath.IsAbs(b.opts.Name):
		return b.opts.Name, nil
	}
	return b.opts.Locator.Find(b.opts.Name)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrLibraryNotFound):
		return "not_found"
	case errors.Is(err, ErrSymbolNotFound):
		return "symbol_missing"
	case errors.Is(err, ErrLinkSkipped):
		return "skipped"
	default:
		return "load_failed"
	}
}

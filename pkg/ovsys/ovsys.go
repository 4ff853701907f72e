// Package ovsys is the entry point the generated OpenVINO bindings use to
// reach the native C API. It owns the process-wide Binder and exposes the
// finder for diagnostics.
//
// Typical use from a binding:
//
//	lib, err := ovsys.Library()
//	if err != nil {
//		return err
//	}
//	status, err := lib.Call("ov_core_create", uintptr(unsafe.Pointer(&core)))
package ovsys

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"ovlink/internal/config"
	"ovlink/internal/finder"
	"ovlink/internal/linking"
)

// Aliases so callers outside this module can name the types. The bound
// library type is reached through Library() as *linking.Library.
type (
	Binder    = linking.Binder
	Options   = linking.Options
	LinkMode  = linking.LinkMode
	LoadError = linking.LoadError
)

const (
	RuntimeFirstUse = linking.RuntimeFirstUse
	BuildTime       = linking.BuildTime
)

var (
	ErrLibraryNotFound = linking.ErrLibraryNotFound
	ErrLoadFailed      = linking.ErrLoadFailed
	ErrSymbolNotFound  = linking.ErrSymbolNotFound
	ErrUnbound         = linking.ErrUnbound
	ErrLinkSkipped     = linking.ErrLinkSkipped
)

var (
	logMu  sync.Mutex
	logger = zerolog.Nop()

	defaultOnce   sync.Once
	defaultBinder *linking.Binder
	defaultCache  *finder.Cache
	defaultErr    error
)

// SetLogger installs the logger used by the default binder. It only has an
// effect before the first call that creates it.
func SetLogger(l zerolog.Logger) {
	logMu.Lock()
	logger = l
	logMu.Unlock()
}

func currentLogger() zerolog.Logger {
	logMu.Lock()
	defer logMu.Unlock()
	return logger
}

// Setup turns a Config into binder options. Unset fields fall back to the
// settings stamped at build time; getenv feeds the finder (nil means
// os.Getenv) with the config's search roots layered on top.
func Setup(cfg config.Config, getenv func(string) string, log zerolog.Logger) (linking.Options, *finder.Cache, error) {
	build := linking.BuildDefaults()
	mode := build.Mode
	if cfg.LinkMode != "" {
		m, err := linking.ParseLinkMode(cfg.LinkMode)
		if err != nil {
			return linking.Options{}, nil, err
		}
		mode = m
	}
	path := cfg.LibraryPath
	if path == "" {
		path = build.LibraryPath
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	f := finder.New(
		finder.WithPlatform(finder.ForName(cfg.Platform)),
		finder.WithGetenv(cfg.Getenv(getenv)),
		finder.WithLogger(log),
	)
	cache := finder.NewCache(f)
	return linking.Options{
		Name:     cfg.LibraryName,
		Path:     path,
		Mode:     mode,
		SkipLink: cfg.SkipLink || build.SkipLink,
		Locator:  cache,
		Logger:   log,
	}, cache, nil
}

// NewBinder returns an independent Binder for cfg. Tests and tools that
// need isolated state use this instead of the process default.
func NewBinder(cfg config.Config, log zerolog.Logger) (*linking.Binder, error) {
	opts, _, err := Setup(cfg, nil, log)
	if err != nil {
		return nil, err
	}
	return linking.NewBinder(opts), nil
}

// Default returns the process-wide binder, configured once from the
// OVLINK_* environment (and OVLINK_CONFIG file).
func Default() (*linking.Binder, error) {
	defaultOnce.Do(func() {
		log := currentLogger()
		cfg, err := config.FromEnv(nil)
		if err != nil {
			defaultErr = fmt.Errorf("ovlink config: %w", err)
			return
		}
		opts, cache, err := Setup(cfg, nil, log)
		if err != nil {
			defaultErr = fmt.Errorf("ovlink config: %w", err)
			return
		}
		defaultBinder = linking.NewBinder(opts)
		defaultCache = cache
	})
	return defaultBinder, defaultErr
}

// Load binds the default library, loading it on first use. Later calls
// return the same outcome.
func Load() error {
	_, err := Library()
	return err
}

// Library returns the bound default library.
func Library() (*linking.Library, error) {
	b, err := Default()
	if err != nil {
		return nil, err
	}
	return b.Bind()
}

// Unload releases the default library. Every *Library previously returned
// reports ErrUnbound afterwards.
func Unload() error {
	b, err := Default()
	if err != nil {
		return err
	}
	return b.Unbind()
}

// Find locates openvino_c with the default, positively cached finder.
func Find() (string, error) {
	if _, err := Default(); err != nil {
		return "", err
	}
	return defaultCache.Find(finder.LibraryC)
}

// FindPluginsXML locates plugins.xml for the default installation.
func FindPluginsXML() (string, error) {
	if _, err := Default(); err != nil {
		return "", err
	}
	return defaultCache.FindPluginsXML()
}

// Version binds the default library if needed and returns its build number.
func Version() (string, error) {
	lib, err := Library()
	if err != nil {
		return "", err
	}
	return VersionOf(lib)
}

// ErrorKind maps a bind error onto a short stable label.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case linking.IsNotFound(err):
		return "not_found"
	case linking.IsSymbolNotFound(err):
		return "symbol_missing"
	case errors.Is(err, linking.ErrLinkSkipped):
		return "skipped"
	case linking.IsUnbound(err):
		return "unbound"
	case linking.IsLoadFailed(err):
		return "load_failed"
	default:
		return "error"
	}
}

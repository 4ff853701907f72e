package finder

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"ovlink/internal/common/fsutil"
	"ovlink/internal/metrics"
)

// Finder searches the filesystem for OpenVINO shared libraries. A Finder has
// no mutable state; every Find is a fresh search. Wrap it in a Cache to keep
// positive results.
type Finder struct {
	platform PlatformConventions
	getenv   func(string) string
	log      zerolog.Logger
}

// Option customizes a Finder.
type Option func(*Finder)

// WithPlatform overrides the native platform conventions.
func WithPlatform(p PlatformConventions) Option {
	return func(f *Finder) {
		if p != nil {
			f.platform = p
		}
	}
}

// WithGetenv replaces os.Getenv as the environment source.
func WithGetenv(fn func(string) string) Option {
	return func(f *Finder) {
		if fn != nil {
			f.getenv = fn
		}
	}
}

// WithEnv makes the finder see only the given variables.
func WithEnv(env map[string]string) Option {
	return WithGetenv(func(k string) string { return env[k] })
}

// WithLogger installs a structured logger. The default discards output.
func WithLogger(l zerolog.Logger) Option {
	return func(f *Finder) { f.log = l }
}

// New returns a Finder for the running OS reading the process environment.
func New(opts ...Option) *Finder {
	f := &Finder{
		platform: Native(),
		getenv:   os.Getenv,
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Platform returns the conventions in use.
func (f *Finder) Platform() PlatformConventions { return f.platform }

// Candidates lists the directories Find would probe, in order. Directories
// derived from environment variables are listed whether or not they exist;
// system and default roots only when present on disk.
func (f *Finder) Candidates() []Candidate {
	p := f.platform
	var out []Candidate
	under := func(src Source, root string, subdirs []string) {
		for _, sub := range subdirs {
			out = append(out, Candidate{Source: src, Dir: filepath.Join(root, filepath.FromSlash(sub))})
		}
	}

	if root := f.env(EnvBuildDir); root != "" {
		under(SourceBuildDir, root, p.BuildSubdirs())
	}
	// An install root may also be a flat directory holding the libraries.
	if root := f.env(EnvInstallDir); root != "" {
		under(SourceInstallDir, root, p.InstallSubdirs())
		out = append(out, Candidate{Source: SourceInstallDir, Dir: filepath.Clean(root)})
	}
	if root := f.env(EnvIntelDir); root != "" {
		under(SourceIntelDir, root, p.InstallSubdirs())
		out = append(out, Candidate{Source: SourceIntelDir, Dir: filepath.Clean(root)})
	}
	if v := f.getenv(p.LibraryPathVar()); v != "" {
		for _, dir := range strings.Split(v, p.ListSeparator()) {
			if dir = strings.TrimSpace(dir); dir != "" {
				out = append(out, Candidate{Source: SourceLibraryPath, Dir: filepath.Clean(dir)})
			}
		}
	}
	for _, dir := range p.SystemDirs() {
		if fsutil.IsDir(dir) {
			out = append(out, Candidate{Source: SourceSystemDir, Dir: dir})
		}
	}
	for _, root := range p.DefaultRoots() {
		if fsutil.IsDir(root) {
			under(SourceDefaultDir, root, p.InstallSubdirs())
		}
	}
	return out
}

// Find returns the absolute path of the first readable file named after
// name (mapped through the platform conventions) in candidate order. On
// failure the error is a *NotFoundError listing every probed directory.
func (f *Finder) Find(name string) (string, error) {
	file := f.platform.FileName(name)
	f.log.Debug().Str("library", name).Str("file", file).Msg("searching for library")

	var probed []Candidate
	for _, c := range f.Candidates() {
		probed = append(probed, c)
		metrics.ObserveProbe(c.Source.String())
		path := filepath.Join(c.Dir, file)
		f.log.Debug().Str("source", c.Source.String()).Str("dir", c.Dir).Msg("searching in")
		if !fsutil.IsReadableFile(path) {
			continue
		}
		abs, err := fsutil.Absolute(path)
		if err != nil {
			continue
		}
		f.log.Info().Str("library", name).Str("path", abs).Str("source", c.Source.String()).Msg("found library")
		metrics.ObserveSearch(true)
		return abs, nil
	}
	metrics.ObserveSearch(false)
	f.log.Debug().Str("library", name).Int("probed", len(probed)).Msg("library not found")
	return "", &NotFoundError{Name: name, File: file, Probed: probed}
}

// env reads an install-root variable, expanding a leading ~.
func (f *Finder) env(key string) string {
	v := strings.TrimSpace(f.getenv(key))
	if v == "" {
		return ""
	}
	if exp, err := fsutil.ExpandHome(v); err == nil {
		return exp
	}
	return v
}

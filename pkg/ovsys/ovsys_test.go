package ovsys

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/rs/zerolog"

	"ovlink/internal/config"
	"ovlink/internal/finder"
	"ovlink/internal/linking"
)

var buildNumber = []byte("2024.1.0-15008-f4afc983258\x00")

// versionLoader serves one image whose ov_get_openvino_version fills the
// out struct like the real C API does.
type versionLoader struct {
	status uintptr
	frees  int
}

const (
	addrGetVersion  = 0x10
	addrVersionFree = 0x20
)

func (l *versionLoader) Open(string) (uintptr, error) { return 1, nil }
func (l *versionLoader) Close(uintptr) error          { return nil }

func (l *versionLoader) Sym(_ uintptr, name string) (uintptr, error) {
	switch name {
	case "ov_get_openvino_version":
		return addrGetVersion, nil
	case "ov_version_free":
		return addrVersionFree, nil
	}
	return 0, errors.New("undefined symbol: " + name)
}

func (l *versionLoader) Call(fn uintptr, args ...uintptr) uintptr {
	v := (*ovVersion)(unsafe.Pointer(args[0]))
	switch fn {
	case addrGetVersion:
		if l.status == 0 {
			v.BuildNumber = &buildNumber[0]
		}
		return l.status
	case addrVersionFree:
		l.frees++
	}
	return 0
}

func bindVersionLib(t *testing.T, ld *versionLoader) *linking.Library {
	t.Helper()
	b := linking.NewBinder(linking.Options{
		Path:     "/fixture/libopenvino_c.so",
		Loader:   ld,
		Manifest: []string{"ov_get_openvino_version", "ov_version_free"},
	})
	lib, err := b.Bind()
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	return lib
}

func TestVersionOf(t *testing.T) {
	ld := &versionLoader{}
	got, err := VersionOf(bindVersionLib(t, ld))
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if got != "2024.1.0-15008-f4afc983258" {
		t.Fatalf("got %q", got)
	}
	if ld.frees != 1 {
		t.Fatalf("ov_version_free calls = %d", ld.frees)
	}
}

func TestVersionOfStatusError(t *testing.T) {
	ld := &versionLoader{status: uintptr(0xFFFFFFFF)}
	if _, err := VersionOf(bindVersionLib(t, ld)); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestVersionOfUnbound(t *testing.T) {
	lib := bindVersionLib(t, &versionLoader{})
	_ = lib.Close()
	if _, err := VersionOf(lib); !errors.Is(err, ErrUnbound) {
		t.Fatalf("expected ErrUnbound, got %v", err)
	}
}

func TestSetup(t *testing.T) {
	if _, _, err := Setup(config.Config{LinkMode: "static"}, nil, zerolog.Nop()); err == nil {
		t.Fatalf("expected bad link mode error")
	}

	dir := t.TempDir()
	want := filepath.Join(dir, "libopenvino_c.so")
	if err := os.WriteFile(want, []byte("\x7fELF"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{Platform: "linux", InstallDir: dir, LinkMode: "runtime", SkipLink: true}
	env := func(string) string { return "" }
	opts, cache, err := Setup(cfg, env, zerolog.Nop())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if opts.Mode != RuntimeFirstUse || !opts.SkipLink {
		t.Fatalf("unexpected options %+v", opts)
	}
	got, err := cache.Find(finder.LibraryC)
	if err != nil || got != want {
		t.Fatalf("got %q err=%v", got, err)
	}
}

func TestReportFailure(t *testing.T) {
	b, err := NewBinder(config.Config{Platform: "linux", InstallDir: t.TempDir()}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	_, bindErr := b.Bind()
	r := Report(b, true)
	if bindErr == nil {
		t.Skip("an OpenVINO install on this host satisfied the search")
	}
	if r.State != "failed" || r.Error == "" || r.ErrorKind == "" {
		t.Fatalf("unexpected report %+v", r)
	}
}

func TestErrorKind(t *testing.T) {
	cases := map[string]error{
		"":               nil,
		"not_found":      &finder.NotFoundError{Name: "openvino_c"},
		"load_failed":    &linking.LoadError{Path: "/x", Diagnostic: "bad ELF"},
		"symbol_missing": &linking.SymbolError{Name: "ov_core_create"},
		"skipped":        ErrLinkSkipped,
		"unbound":        ErrUnbound,
		"error":          errors.New("other"),
	}
	for want, err := range cases {
		if got := ErrorKind(err); got != want {
			t.Fatalf("%v: got %q want %q", err, got, want)
		}
	}
}

func TestDefaultHonorsSkipLink(t *testing.T) {
	t.Setenv(config.EnvSkipLink, "true")
	t.Setenv(config.EnvConfigFile, "")
	if err := Load(); !errors.Is(err, ErrLinkSkipped) {
		t.Fatalf("expected ErrLinkSkipped, got %v", err)
	}
	if lib, err := Library(); lib != nil || !errors.Is(err, ErrLinkSkipped) {
		t.Fatalf("Library: lib=%v err=%v", lib, err)
	}
	if _, err := Version(); !errors.Is(err, ErrLinkSkipped) {
		t.Fatalf("expected ErrLinkSkipped, got %v", err)
	}
	if err := Unload(); err != nil {
		t.Fatalf("unload: %v", err)
	}
}

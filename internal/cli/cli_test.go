package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ovlink/internal/finder"
	"ovlink/internal/linking"
	"ovlink/pkg/types"
)

// fakeLoader resolves the full manifest for any path it was told about.
type fakeLoader struct {
	paths   map[string]bool
	missing string
}

func (l *fakeLoader) Open(path string) (uintptr, error) {
	if !l.paths[path] {
		return 0, errors.New(path + ": cannot open shared object file")
	}
	return 1, nil
}

func (l *fakeLoader) Sym(_ uintptr, name string) (uintptr, error) {
	if name == l.missing {
		return 0, errors.New("undefined symbol: " + name)
	}
	return uintptr(len(name)), nil
}

func (l *fakeLoader) Close(uintptr) error              { return nil }
func (l *fakeLoader) Call(uintptr, ...uintptr) uintptr { return 1 }

// withEnv installs env as the whole environment and ld as the loader.
func withEnv(t *testing.T, env map[string]string, ld linking.Loader) {
	t.Helper()
	oldEnv, oldLoader := getenv, newLoader
	getenv = func(k string) string { return env[k] }
	if ld != nil {
		newLoader = func() linking.Loader { return ld }
	}
	t.Cleanup(func() { getenv, newLoader = oldEnv, oldLoader })
}

// fixtureInstall creates an install tree with openvino_c in runtime/lib/intel64.
func fixtureInstall(t *testing.T) (root, lib string) {
	t.Helper()
	root = t.TempDir()
	dir := filepath.Join(root, "runtime", "lib", "intel64")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	lib = filepath.Join(dir, "libopenvino_c.so")
	if err := os.WriteFile(lib, []byte("\x7fELF"), 0o644); err != nil {
		t.Fatal(err)
	}
	return root, lib
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(args, &out, &errOut)
	return out.String(), err
}

func TestFindCommand(t *testing.T) {
	root, lib := fixtureInstall(t)
	withEnv(t, map[string]string{finder.EnvInstallDir: root}, nil)

	out, err := run(t, "find", "--platform", "linux")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if strings.TrimSpace(out) != "openvino_c\t"+lib {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestFindCommandJSONMiss(t *testing.T) {
	root, _ := fixtureInstall(t)
	withEnv(t, map[string]string{finder.EnvInstallDir: root}, nil)

	out, err := run(t, "find", "--platform", "linux", "--json", "openvino_c", "openvino_nonexistent")
	if !linking.IsNotFound(err) || ExitCode(err) != 2 {
		t.Fatalf("expected not-found error, got %v", err)
	}
	var reports []types.FindResponse
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if len(reports) != 2 || !reports[0].Found || reports[1].Found || len(reports[1].Probed) == 0 {
		t.Fatalf("unexpected reports %+v", reports)
	}
}

func TestBindCommand(t *testing.T) {
	root, lib := fixtureInstall(t)
	withEnv(t, map[string]string{finder.EnvInstallDir: root}, &fakeLoader{paths: map[string]bool{lib: true}})

	out, err := run(t, "bind", "--platform", "linux", "--symbols")
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if !strings.Contains(out, "bound "+lib) || !strings.Contains(out, "ov_core_create") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestBindCommandMissingSymbol(t *testing.T) {
	root, lib := fixtureInstall(t)
	withEnv(t, map[string]string{finder.EnvInstallDir: root}, &fakeLoader{paths: map[string]bool{lib: true}, missing: "ov_tensor_free"})

	out, err := run(t, "bind", "--platform", "linux", "--json")
	if !linking.IsSymbolNotFound(err) || ExitCode(err) != 4 {
		t.Fatalf("expected symbol error, got %v", err)
	}
	var st types.BindStatus
	if err := json.Unmarshal([]byte(out), &st); err != nil {
		t.Fatalf("json: %v", err)
	}
	if st.State != "failed" || st.ErrorKind != "symbol_missing" || !strings.Contains(st.Error, "ov_tensor_free") {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestBindCommandBuildTimeMissingFile(t *testing.T) {
	withEnv(t, map[string]string{}, &fakeLoader{})
	missing := filepath.Join(t.TempDir(), "libopenvino_c.so")
	_, err := run(t, "bind", "--link-mode", "build", "--library-path", missing)
	if !linking.IsLoadFailed(err) || ExitCode(err) != 3 {
		t.Fatalf("expected load failure, got %v", err)
	}
}

func TestBindCommandSkipLinkFromEnv(t *testing.T) {
	withEnv(t, map[string]string{"OVLINK_SKIP_LINK": "1"}, &fakeLoader{})
	_, err := run(t, "bind")
	if !errors.Is(err, linking.ErrLinkSkipped) || ExitCode(err) != 5 {
		t.Fatalf("expected skip, got %v", err)
	}
}

func TestConfigFileFlag(t *testing.T) {
	root, lib := fixtureInstall(t)
	cfgPath := filepath.Join(t.TempDir(), "ovlink.toml")
	if err := os.WriteFile(cfgPath, []byte("install_dir = \""+filepath.ToSlash(root)+"\"\nplatform = \"linux\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	withEnv(t, map[string]string{}, nil)
	out, err := run(t, "find", "--config", cfgPath)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !strings.Contains(out, lib) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestPluginsXMLCommand(t *testing.T) {
	root, lib := fixtureInstall(t)
	want := filepath.Join(filepath.Dir(lib), "plugins.xml")
	if err := os.WriteFile(want, []byte("<ie/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	withEnv(t, map[string]string{finder.EnvInstallDir: root}, nil)
	out, err := run(t, "plugins-xml", "--platform", "linux")
	if err != nil || strings.TrimSpace(out) != want {
		t.Fatalf("out=%q err=%v", out, err)
	}
}

func TestEnvCommand(t *testing.T) {
	root, _ := fixtureInstall(t)
	withEnv(t, map[string]string{finder.EnvInstallDir: root}, nil)
	out, err := run(t, "env", "--platform", "linux", "--json")
	if err != nil {
		t.Fatalf("env: %v", err)
	}
	var rep types.EnvReport
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("json: %v", err)
	}
	if rep.Platform != "linux" || rep.Vars[finder.EnvInstallDir] != root || len(rep.Candidates) < 3 {
		t.Fatalf("unexpected report %+v", rep)
	}
	if rep.Candidates[0].Source != "install_dir" {
		t.Fatalf("first candidate %+v", rep.Candidates[0])
	}
}

func TestServeCommand(t *testing.T) {
	root, lib := fixtureInstall(t)
	withEnv(t, map[string]string{finder.EnvInstallDir: root}, &fakeLoader{paths: map[string]bool{lib: true}})

	addrs := make(chan string, 1)
	oldListen, oldSignals := listen, shutdownSignals
	listen = func(string) (net.Listener, error) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err == nil {
			addrs <- ln.Addr().String()
		}
		return ln, err
	}
	stop := make(chan struct{})
	shutdownSignals = func(parent context.Context) (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(parent)
		go func() {
			<-stop
			cancel()
		}()
		return ctx, cancel
	}
	t.Cleanup(func() { listen, shutdownSignals = oldListen, oldSignals })

	done := make(chan error, 1)
	go func() {
		_, err := run(t, "serve", "--platform", "linux", "--bind")
		done <- err
	}()

	var addr string
	select {
	case addr = <-addrs:
	case <-time.After(5 * time.Second):
		t.Fatalf("server never listened")
	}
	resp, err := http.Get("http://" + addr + "/readyz")
	if err != nil {
		t.Fatalf("readyz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("readyz status=%d", resp.StatusCode)
	}

	close(stop)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not shut down")
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != 0 || ExitCode(errors.New("x")) != 1 {
		t.Fatalf("unexpected default exit codes")
	}
	if ExitCode(finder.ErrPluginsXMLNotFound) != 2 {
		t.Fatalf("plugins.xml miss should exit 2")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "bogus")
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected log output %q", buf.String())
	}
}

func TestServeListenErrorHasNoProgramPrefix(t *testing.T) {
	withEnv(t, map[string]string{}, &fakeLoader{})
	oldListen := listen
	listen = func(string) (net.Listener, error) { return nil, errors.New("address already in use") }
	t.Cleanup(func() { listen = oldListen })

	_, err := run(t, "serve", "--addr", "127.0.0.1:1")
	if err == nil {
		t.Fatalf("expected listen error")
	}
	if got := err.Error(); got != "listen 127.0.0.1:1: address already in use" {
		t.Fatalf("unexpected error %q", got)
	}
}

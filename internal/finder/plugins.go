package finder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"

	"ovlink/internal/common/fsutil"
)

const (
	// LibraryC is the logical name of the OpenVINO C API library.
	LibraryC = "openvino_c"

	pluginsXML       = "plugins.xml"
	versionDirPrefix = "openvino-"
)

// FindPluginsXML locates the device plugin registry. OPENVINO_PLUGINS_XML is
// returned as-is when set; otherwise plugins.xml is looked up beside the C
// library and then in the newest openvino-<version> directory next to it.
func (f *Finder) FindPluginsXML() (string, error) {
	return f.pluginsXML(f)
}

// FindPluginsXML is like Finder.FindPluginsXML but resolves the C library
// through the cache.
func (c *Cache) FindPluginsXML() (string, error) {
	return c.finder.pluginsXML(c)
}

func (f *Finder) pluginsXML(loc Locator) (string, error) {
	if v := strings.TrimSpace(f.getenv(EnvPluginsXML)); v != "" {
		return v, nil
	}
	lib, err := loc.Find(LibraryC)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPluginsXMLNotFound, err)
	}
	dir := filepath.Dir(lib)
	if p := filepath.Join(dir, pluginsXML); fsutil.IsReadableFile(p) {
		f.log.Info().Str("path", p).Msg("found plugins.xml")
		return p, nil
	}
	if vdir, ok := latestVersionDir(dir); ok {
		if p := filepath.Join(vdir, pluginsXML); fsutil.IsReadableFile(p) {
			f.log.Info().Str("path", p).Msg("found plugins.xml")
			return p, nil
		}
	}
	return "", fmt.Errorf("%w beside %s", ErrPluginsXMLNotFound, lib)
}

// latestVersionDir picks the highest openvino-<version> subdirectory of dir,
// e.g. /usr/lib/x86_64-linux-gnu/openvino-2023.1.0. Entries whose suffix is
// not a version are ignored.
func latestVersionDir(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var best, bestName string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, versionDirPrefix) {
			continue
		}
		v := "v" + strings.TrimPrefix(name, versionDirPrefix)
		if !semver.IsValid(v) {
			continue
		}
		if best == "" || semver.Compare(v, best) > 0 {
			best, bestName = v, name
		}
	}
	if best == "" {
		return "", false
	}
	return filepath.Join(dir, bestName), true
}

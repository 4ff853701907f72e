package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds link and search settings. Zero values mean "unspecified";
// the environment and built-in defaults fill them in.
type Config struct {
	// LinkMode is "runtime" (default) or "build".
	LinkMode    string `json:"link_mode" yaml:"link_mode" toml:"link_mode"`
	LibraryName string `json:"library_name" yaml:"library_name" toml:"library_name"`
	// LibraryPath bypasses the finder.
	LibraryPath string `json:"library_path" yaml:"library_path" toml:"library_path"`
	SkipLink    bool   `json:"skip_link" yaml:"skip_link" toml:"skip_link"`
	// Platform forces a convention set ("linux", "darwin", "windows").
	Platform string `json:"platform" yaml:"platform" toml:"platform"`

	// Search roots. When set they take precedence over the OPENVINO_*
	// variables of the same meaning.
	BuildDir   string `json:"build_dir" yaml:"build_dir" toml:"build_dir"`
	InstallDir string `json:"install_dir" yaml:"install_dir" toml:"install_dir"`
	PluginsXML string `json:"plugins_xml" yaml:"plugins_xml" toml:"plugins_xml"`

	LogLevel    string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	Addr        string   `json:"addr" yaml:"addr" toml:"addr"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Merge returns base with every non-zero field of over applied on top.
func Merge(base, over Config) Config {
	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	str(&base.LinkMode, over.LinkMode)
	str(&base.LibraryName, over.LibraryName)
	str(&base.LibraryPath, over.LibraryPath)
	str(&base.Platform, over.Platform)
	str(&base.BuildDir, over.BuildDir)
	str(&base.InstallDir, over.InstallDir)
	str(&base.PluginsXML, over.PluginsXML)
	str(&base.LogLevel, over.LogLevel)
	str(&base.Addr, over.Addr)
	if over.SkipLink {
		base.SkipLink = true
	}
	if len(over.CORSOrigins) > 0 {
		base.CORSOrigins = append([]string(nil), over.CORSOrigins...)
	}
	return base
}

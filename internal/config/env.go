package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables read by FromEnv.
const (
	EnvConfigFile  = "OVLINK_CONFIG"
	EnvLinkMode    = "OVLINK_LINK_MODE"
	EnvLibraryPath = "OVLINK_LIBRARY_PATH"
	EnvSkipLink    = "OVLINK_SKIP_LINK"
	EnvLogLevel    = "OVLINK_LOG_LEVEL"
	EnvPlatform    = "OVLINK_PLATFORM"
	EnvAddr        = "OVLINK_ADDR"
	EnvCORSOrigins = "OVLINK_CORS_ORIGINS"
)

// Var returns an environment variable stripped of surrounding whitespace
// and quotes.
func Var(getenv func(string) string, key string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	return strings.Trim(strings.TrimSpace(getenv(key)), "\"'")
}

// FromEnv builds a Config from OVLINK_* variables. When OVLINK_CONFIG names
// a file it is loaded first and the variables override it.
func FromEnv(getenv func(string) string) (Config, error) {
	var cfg Config
	if p := Var(getenv, EnvConfigFile); p != "" {
		fileCfg, err := Load(p)
		if err != nil {
			return cfg, err
		}
		cfg = fileCfg
	}
	env := Config{
		LinkMode:    Var(getenv, EnvLinkMode),
		LibraryPath: Var(getenv, EnvLibraryPath),
		LogLevel:    Var(getenv, EnvLogLevel),
		Platform:    Var(getenv, EnvPlatform),
		Addr:        Var(getenv, EnvAddr),
		CORSOrigins: SplitCSV(Var(getenv, EnvCORSOrigins)),
	}
	if v, err := strconv.ParseBool(Var(getenv, EnvSkipLink)); err == nil {
		env.SkipLink = v
	}
	return Merge(cfg, env), nil
}

// Getenv returns an environment lookup where the config's search roots
// shadow the matching OPENVINO_* variables of base.
func (c Config) Getenv(base func(string) string) func(string) string {
	if base == nil {
		base = os.Getenv
	}
	overlay := map[string]string{}
	if c.BuildDir != "" {
		overlay["OPENVINO_BUILD_DIR"] = c.BuildDir
	}
	if c.InstallDir != "" {
		overlay["OPENVINO_INSTALL_DIR"] = c.InstallDir
	}
	if c.PluginsXML != "" {
		overlay["OPENVINO_PLUGINS_XML"] = c.PluginsXML
	}
	if len(overlay) == 0 {
		return base
	}
	return func(k string) string {
		if v, ok := overlay[k]; ok {
			return v
		}
		return base(k)
	}
}

// SplitCSV splits a comma separated list, dropping blanks.
func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

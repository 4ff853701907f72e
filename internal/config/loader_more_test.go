package config

import (
	"testing"
)

func TestLoad_NonexistentFile(t *testing.T) {
	if _, err := Load("/definitely/not/a/real/ovlink-12345.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.yaml", "link_mode: build\n: broken\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected YAML unmarshal error")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.json", `{ "link_mode": "build", "library_path": }`)
	if _, err := Load(p); err == nil {
		t.Fatalf("expected JSON unmarshal error")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.toml", "link_mode=build\nlibrary_path\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected TOML unmarshal error")
	}
}

func TestMerge(t *testing.T) {
	base := Config{LinkMode: "runtime", Addr: ":9100", CORSOrigins: []string{"a"}}
	got := Merge(base, Config{LinkMode: "build", SkipLink: true})
	if got.LinkMode != "build" || got.Addr != ":9100" || !got.SkipLink || len(got.CORSOrigins) != 1 {
		t.Fatalf("unexpected merge %+v", got)
	}
}

package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":      LevelOff,
		"off":   LevelOff,
		"error": LevelError,
		"info":  LevelInfo,
		"debug": LevelDebug,
		"weird": LevelInfo, // default
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogLevel_Overrides(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x?log=debug", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("query override failed: %v", got)
	}
	r = httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("header override failed: %v", got)
	}
}

func TestAccessLog_UsesZerolog(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { zlog = nil })

	h := NewMux(&mockService{})
	do(t, h, http.MethodGet, "/healthz?log=info")
	if !strings.Contains(buf.String(), `"path":"/healthz"`) || !strings.Contains(buf.String(), `"status":200`) {
		t.Fatalf("unexpected log output: %s", buf.String())
	}
	buf.Reset()
	do(t, h, http.MethodGet, "/healthz?log=off")
	if buf.Len() != 0 {
		t.Fatalf("expected no log at level off, got %s", buf.String())
	}
}

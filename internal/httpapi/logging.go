package httpapi

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch s {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// global default, read once
var defaultLogLevel = parseLevel(os.Getenv("OVLINK_HTTP_LOG"))

func requestLogLevel(r *http.Request) LogLevel {
	if v := r.URL.Query().Get("log"); v != "" {
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

func logf(lvl LogLevel, format string, args ...any) {
	if zlog == nil {
		log.Printf(format, args...)
		return
	}
	ev := zlog.Info()
	if lvl == LevelError {
		ev = zlog.Error()
	} else if lvl == LevelDebug {
		ev = zlog.Debug()
	}
	ev.Msg(fmt.Sprintf(format, args...))
}

// accessLog logs one line per request when the effective level allows it.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lvl := requestLogLevel(r)
		if lvl < LevelInfo {
			next.ServeHTTP(w, r)
			return
		}
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sr, r)
		if zlog != nil {
			z := zlog.Info().Str("method", r.Method).Str("path", r.URL.Path).Int("status", sr.status).Dur("dur", time.Since(start))
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Msg("request")
			return
		}
		log.Printf("%s %s status=%d dur=%s", r.Method, r.URL.Path, sr.status, time.Since(start))
	})
}

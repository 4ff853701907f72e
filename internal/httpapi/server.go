package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ovlink/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Status() types.BindStatus
	Ready() bool
	Bind() (types.BindStatus, error)
	Unbind() (types.BindStatus, error)
	Find(name string) types.FindResponse
	Env() types.EnvReport
}

// NewMux builds the diagnostics router.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(accessLog)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: orDefault(corsAllowedMethods, []string{"GET", "POST", "OPTIONS"}),
			AllowedHeaders: orDefault(corsAllowedHeaders, []string{"Accept", "Content-Type", "X-Log-Level"}),
			MaxAge:         300,
		}))
	}
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("bound"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("unbound"))
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Get("/env", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Env())
	})

	r.Get("/find/{name}", func(w http.ResponseWriter, r *http.Request) {
		resp := svc.Find(chi.URLParam(r, "name"))
		if !resp.Found {
			writeJSON(w, http.StatusNotFound, resp)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Post("/bind", func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Bind()
		if err != nil {
			logf(LevelError, "bind: %v", err)
			writeJSONError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, st)
	})

	r.Post("/unbind", func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Unbind()
		if err != nil {
			writeJSONError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, st)
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}

package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware_EmitsRequestCounters(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	rr := httptest.NewRecorder()
	MetricsMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !bytes.Contains(mrr.Body.Bytes(), []byte("ovlink_http_requests_total")) {
		t.Fatalf("expected ovlink_http_requests_total in metrics output")
	}
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	h := NewMux(&mockService{})
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/find/{name}", http.MethodGet, "404"))
	do(t, h, http.MethodGet, "/find/a")
	do(t, h, http.MethodGet, "/find/b")
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/find/{name}", http.MethodGet, "404"))
	if after-before != 2 {
		t.Fatalf("expected 2 requests under the route pattern, got %v", after-before)
	}
}

func TestMetricsEndpointOnMux(t *testing.T) {
	w := do(t, NewMux(&mockService{}), http.MethodGet, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"ovlink/internal/linking"
	"ovlink/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusFor maps bind errors to HTTP codes. A library that cannot be
// located or loaded makes the service unavailable rather than broken.
func statusFor(err error) int {
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	switch {
	case linking.IsNotFound(err), linking.IsLoadFailed(err), linking.IsSymbolNotFound(err):
		return http.StatusServiceUnavailable
	case linking.IsUnbound(err):
		return http.StatusConflict
	case errors.Is(err, linking.ErrLinkSkipped):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logf(LevelError, "encode response: %v", err)
	}
}

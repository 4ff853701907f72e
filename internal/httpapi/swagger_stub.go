//go:build !swagger

package httpapi

import (
	"github.com/go-chi/chi/v5"
)

// MountSwagger leaves /swagger unrouted; the diagnostics docs are only
// compiled in with -tags=swagger.
func MountSwagger(r chi.Router) {}

package kit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ChiRoutePatternOrPath is the metrics path label: the chi route pattern
// keeps parameterized routes like /products/{id} as one series instead of
// one per id. The raw path is the fallback for unmatched requests.
func ChiRoutePatternOrPath(r *http.Request) string {
	if rp := chi.RouteContext(r.Context()).RoutePattern(); rp != "" {
		return rp
	}
	return r.URL.Path
}

// Package httptransport assembles the HTTP surface. Route ownership stays
// with the feature handlers; this package only mounts them and adds the
// operational endpoints.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bookkeeper/internal/transport/http/shared"
)

// Registrar is anything that can attach its routes to the root router.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter builds the root router: liveness, Prometheus metrics, and
// every feature handler's routes.
func NewRouter(handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

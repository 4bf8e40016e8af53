package handler

import (
	"net/http"

	"bookkeeper/internal/entities/models"
	"bookkeeper/internal/transport/http/shared"
	dErrors "bookkeeper/pkg/domain-errors"
)

// handleResolve answers "which entity does this string mean":
// GET /api/v1/resolve?kind=merchant&q=STARBUCKS%20*123
func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	kind := models.Kind(query.Get("kind"))
	q := query.Get("q")

	if kind == "" || q == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "kind and q query parameters are required"))
		return
	}

	res, err := h.resolver.Resolve(r.Context(), kind, q)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			shared.WriteError(w, err)
			return
		}
		h.writeLookupError(w, r, err, "resolve")
		return
	}
	shared.WriteJSON(w, http.StatusOK, res)
}

// Package handler exposes the audit trail over REST.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"bookkeeper/internal/audit"
	"bookkeeper/internal/platform/metrics"
	"bookkeeper/internal/platform/middleware"
	"bookkeeper/internal/transport/http/shared"
)

const defaultRecentLimit = 50

// Handler handles audit endpoints.
type Handler struct {
	logger     *slog.Logger
	store      audit.Store
	metrics    *metrics.Metrics
	adminToken string
}

// New creates an audit Handler.
func New(store audit.Store, adminToken string, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{logger: logger, store: store, metrics: m, adminToken: adminToken}
}

// Register registers the audit routes with the chi router. The trail
// records who changed what, so the routes are admin only.
func (h *Handler) Register(r chi.Router) {
	sub := chi.NewRouter()
	sub.Use(middleware.Recovery(h.logger))
	sub.Use(middleware.RequestID)
	sub.Use(middleware.Logger(h.logger))
	sub.Use(middleware.Timeout(30 * time.Second))
	sub.Use(middleware.ContentTypeJSON)
	sub.Use(middleware.LatencyMiddleware(h.metrics))
	sub.Use(middleware.RequireAdminToken(h.adminToken, h.logger))

	sub.Get("/recent", h.handleRecent)
	sub.Get("/entity/{id}", h.handleByEntity)

	r.Mount("/api/v1/audit", sub)
}

func (h *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	events, err := h.store.ListRecent(r.Context(), limit)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, events)
}

func (h *Handler) handleByEntity(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.ListByEntity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, events)
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "failed to read audit trail",
		"error", err.Error(),
		"request_id", middleware.GetRequestID(r.Context()),
	)
	shared.WriteError(w, err)
}

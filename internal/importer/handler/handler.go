// Package handler accepts statement CSV uploads.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bookkeeper/internal/importer"
	"bookkeeper/internal/platform/metrics"
	"bookkeeper/internal/platform/middleware"
	"bookkeeper/internal/transport/http/shared"
)

// Uploads are bounded so a runaway client cannot exhaust memory.
const maxUploadBytes = 10 << 20

// Handler handles the CSV import endpoint.
type Handler struct {
	logger     *slog.Logger
	importer   *importer.Importer
	metrics    *metrics.Metrics
	adminToken string
}

// New creates an import Handler.
func New(imp *importer.Importer, adminToken string, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{logger: logger, importer: imp, metrics: m, adminToken: adminToken}
}

// Register registers the import route with the chi router. Imports write
// entities and transactions, so the route is admin only.
func (h *Handler) Register(r chi.Router) {
	sub := chi.NewRouter()
	sub.Use(middleware.Recovery(h.logger))
	sub.Use(middleware.RequestID)
	sub.Use(middleware.RequestTime)
	sub.Use(middleware.Logger(h.logger))
	sub.Use(middleware.Timeout(60 * time.Second))
	sub.Use(middleware.ContentTypeJSON)
	sub.Use(middleware.LatencyMiddleware(h.metrics))
	sub.Use(middleware.RequireAdminToken(h.adminToken, h.logger))

	sub.Post("/", h.handleImport)

	r.Mount("/api/v1/import", sub)
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	result, err := h.importer.ImportCSV(ctx, body)
	if err != nil {
		h.logger.ErrorContext(ctx, "csv import failed",
			"error", err.Error(),
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "csv import finished",
		"rows", result.Rows,
		"imported", result.Imported,
		"unresolved", result.Unresolved,
		"invalid", result.Invalid,
		"request_id", middleware.GetRequestID(ctx),
	)
	shared.WriteJSON(w, http.StatusOK, result)
}

// Package handler exposes stored transactions over REST.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"bookkeeper/internal/platform/metrics"
	"bookkeeper/internal/platform/middleware"
	"bookkeeper/internal/transactions"
	"bookkeeper/internal/transport/http/shared"
	"bookkeeper/pkg/domain"
)

const defaultListLimit = 100

// Handler handles transaction endpoints.
type Handler struct {
	logger  *slog.Logger
	store   transactions.Store
	metrics *metrics.Metrics
}

// New creates a transaction Handler.
func New(store transactions.Store, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{logger: logger, store: store, metrics: m}
}

// Register registers the transaction routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	sub := chi.NewRouter()
	sub.Use(middleware.Recovery(h.logger))
	sub.Use(middleware.RequestID)
	sub.Use(middleware.Logger(h.logger))
	sub.Use(middleware.Timeout(30 * time.Second))
	sub.Use(middleware.ContentTypeJSON)
	sub.Use(middleware.LatencyMiddleware(h.metrics))

	sub.Get("/", h.handleList)
	sub.Get("/{id}", h.handleGet)

	r.Mount("/api/v1/transactions", sub)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	switch {
	case query.Get("account_id") != "":
		accountID, err := domain.ParseAccountID(query.Get("account_id"))
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		txs, err := h.store.ListByAccount(ctx, accountID)
		if err != nil {
			h.writeListError(w, r, err)
			return
		}
		shared.WriteJSON(w, http.StatusOK, txs)
	case query.Get("merchant_id") != "":
		merchantID, err := domain.ParseMerchantID(query.Get("merchant_id"))
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		txs, err := h.store.ListByMerchant(ctx, merchantID)
		if err != nil {
			h.writeListError(w, r, err)
			return
		}
		shared.WriteJSON(w, http.StatusOK, txs)
	default:
		limit := defaultListLimit
		if raw := query.Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				limit = parsed
			}
		}
		txs, err := h.store.ListRecent(ctx, limit)
		if err != nil {
			h.writeListError(w, r, err)
			return
		}
		shared.WriteJSON(w, http.StatusOK, txs)
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseTransactionID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	tx, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, tx)
}

func (h *Handler) writeListError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "failed to list transactions",
		"error", err.Error(),
		"request_id", middleware.GetRequestID(r.Context()),
	)
	shared.WriteError(w, err)
}

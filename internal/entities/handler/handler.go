// Package handler exposes the entity registries over REST.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bookkeeper/internal/entities"
	"bookkeeper/internal/platform/metrics"
	"bookkeeper/internal/platform/middleware"
	"bookkeeper/internal/resolver"
	"bookkeeper/internal/transport/http/shared"
	dErrors "bookkeeper/pkg/domain-errors"
)

// Handler handles entity registry endpoints.
type Handler struct {
	logger     *slog.Logger
	set        *entities.Set
	resolver   *resolver.Resolver
	metrics    *metrics.Metrics
	adminToken string
}

// New creates an entity Handler.
func New(set *entities.Set, res *resolver.Resolver, logger *slog.Logger, m *metrics.Metrics, adminToken string) *Handler {
	return &Handler{
		logger:     logger,
		set:        set,
		resolver:   res,
		metrics:    m,
		adminToken: adminToken,
	}
}

// Register registers the entity routes with the chi router. Reads are
// open; writes sit behind the admin token.
func (h *Handler) Register(r chi.Router) {
	api := chi.NewRouter()
	api.Use(middleware.Recovery(h.logger))
	api.Use(middleware.RequestID)
	api.Use(middleware.RequestTime)
	api.Use(middleware.Logger(h.logger))
	api.Use(middleware.Timeout(30 * time.Second))
	api.Use(middleware.ContentTypeJSON)
	api.Use(middleware.LatencyMiddleware(h.metrics))

	api.Get("/resolve", h.handleResolve)

	api.Route("/banks", func(r chi.Router) {
		r.Get("/", h.handleListBanks)
		r.Get("/{id}", h.handleGetBank)
		r.Get("/{id}/versions", h.handleBankVersions)
		r.Get("/{id}/at", h.handleBankAt)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdminToken(h.adminToken, h.logger))
			r.Post("/", h.handleCreateBank)
			r.Put("/{id}", h.handleUpdateBank)
			r.Post("/{id}/aliases", h.handleAddBankAlias)
		})
	})

	api.Route("/merchants", func(r chi.Router) {
		r.Get("/", h.handleListMerchants)
		r.Get("/{id}", h.handleGetMerchant)
		r.Get("/{id}/versions", h.handleMerchantVersions)
		r.Get("/{id}/at", h.handleMerchantAt)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdminToken(h.adminToken, h.logger))
			r.Post("/", h.handleCreateMerchant)
			r.Put("/{id}", h.handleUpdateMerchant)
			r.Post("/{id}/aliases", h.handleAddMerchantAlias)
		})
	})

	api.Route("/categories", func(r chi.Router) {
		r.Get("/", h.handleListCategories)
		r.Get("/{id}", h.handleGetCategory)
		r.Get("/{id}/versions", h.handleCategoryVersions)
		r.Get("/{id}/at", h.handleCategoryAt)
		r.Get("/{id}/children", h.handleCategoryChildren)
		r.Get("/{id}/descendants", h.handleCategoryDescendants)
		r.Get("/{id}/path", h.handleCategoryPath)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdminToken(h.adminToken, h.logger))
			r.Post("/", h.handleCreateCategory)
			r.Put("/{id}", h.handleUpdateCategory)
			r.Put("/{id}/parent", h.handleMoveCategory)
		})
	})

	api.Route("/accounts", func(r chi.Router) {
		r.Get("/", h.handleListAccounts)
		r.Get("/balances", h.handleAccountBalances)
		r.Get("/{id}", h.handleGetAccount)
		r.Get("/{id}/versions", h.handleAccountVersions)
		r.Get("/{id}/at", h.handleAccountAt)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdminToken(h.adminToken, h.logger))
			r.Post("/", h.handleCreateAccount)
			r.Put("/{id}", h.handleUpdateAccount)
			r.Put("/{id}/balance", h.handleUpdateAccountBalance)
		})
	})

	r.Mount("/api/v1", api)
}

// timeParam parses the required ?time= RFC3339 query parameter of the
// point-in-time endpoints.
func timeParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("time")
	if raw == "" {
		return time.Time{}, dErrors.New(dErrors.CodeBadRequest, "missing time query parameter")
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeBadRequest, "time must be RFC3339")
	}
	return at, nil
}

func (h *Handler) writeLookupError(w http.ResponseWriter, r *http.Request, err error, what string) {
	h.logger.WarnContext(r.Context(), "lookup failed",
		"what", what,
		"error", err.Error(),
		"request_id", middleware.GetRequestID(r.Context()),
	)
	shared.WriteError(w, err)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bookkeeper/internal/entities/models"
	"bookkeeper/internal/transport/http/shared"
	"bookkeeper/pkg/domain"
	dErrors "bookkeeper/pkg/domain-errors"
)

func (h *Handler) handleListMerchants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	merchants := h.set.Merchants.AllCurrent(ctx)
	if t := r.URL.Query().Get("type"); t != "" {
		merchants = h.set.Merchants.ByType(ctx, models.MerchantType(t))
	}
	shared.WriteJSON(w, http.StatusOK, merchants)
}

func (h *Handler) handleCreateMerchant(w http.ResponseWriter, r *http.Request) {
	var req merchantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	v := h.set.Merchants.Register(r.Context(), models.Merchant{
		CanonicalName:     req.CanonicalName,
		Aliases:           req.Aliases,
		Type:              req.Type,
		SuggestedCategory: req.SuggestedCategory,
	})
	shared.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleGetMerchant(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseMerchantID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	v, err := h.set.Merchants.GetCurrentVersion(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, err, "merchant")
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleMerchantVersions(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseMerchantID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, h.set.Merchants.GetAllVersions(r.Context(), id))
}

func (h *Handler) handleMerchantAt(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseMerchantID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	at, err := timeParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	v, err := h.set.Merchants.GetAtTime(r.Context(), id, at)
	if err != nil {
		h.writeLookupError(w, r, err, "merchant")
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleUpdateMerchant(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseMerchantID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req merchantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	if _, err := h.set.Merchants.Update(r.Context(), id, req.ChangeReason, func(m *models.Merchant) {
		m.CanonicalName = req.CanonicalName
		m.Aliases = req.Aliases
		m.Type = req.Type
		m.SuggestedCategory = req.SuggestedCategory
	}); err != nil {
		h.writeLookupError(w, r, err, "merchant")
		return
	}

	v, err := h.set.Merchants.GetCurrentVersion(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleAddMerchantAlias(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseMerchantID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req aliasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	if _, err := h.set.Merchants.AddAlias(r.Context(), id, req.Alias); err != nil {
		h.writeLookupError(w, r, err, "merchant")
		return
	}

	v, err := h.set.Merchants.GetCurrentVersion(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

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

func (h *Handler) handleListBanks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	banks := h.set.Banks.AllCurrent(ctx)
	if country := r.URL.Query().Get("country"); country != "" {
		banks = h.set.Banks.ByCountry(ctx, country)
	} else if t := r.URL.Query().Get("type"); t != "" {
		banks = h.set.Banks.ByType(ctx, models.BankType(t))
	}
	shared.WriteJSON(w, http.StatusOK, banks)
}

func (h *Handler) handleCreateBank(w http.ResponseWriter, r *http.Request) {
	var req bankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	v := h.set.Banks.Register(r.Context(), models.Bank{
		CanonicalName: req.CanonicalName,
		Aliases:       req.Aliases,
		Country:       req.Country,
		Type:          req.Type,
	})
	shared.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleGetBank(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseBankID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	v, err := h.set.Banks.GetCurrentVersion(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, err, "bank")
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleBankVersions(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseBankID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, h.set.Banks.GetAllVersions(r.Context(), id))
}

func (h *Handler) handleBankAt(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseBankID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	at, err := timeParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	v, err := h.set.Banks.GetAtTime(r.Context(), id, at)
	if err != nil {
		h.writeLookupError(w, r, err, "bank")
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleUpdateBank(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseBankID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req bankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	if _, err := h.set.Banks.Update(r.Context(), id, req.ChangeReason, func(b *models.Bank) {
		b.CanonicalName = req.CanonicalName
		b.Aliases = req.Aliases
		b.Country = req.Country
		b.Type = req.Type
	}); err != nil {
		h.writeLookupError(w, r, err, "bank")
		return
	}

	v, err := h.set.Banks.GetCurrentVersion(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleAddBankAlias(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseBankID(chi.URLParam(r, "id"))
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

	if _, err := h.set.Banks.Update(r.Context(), id, "add alias "+req.Alias, func(b *models.Bank) {
		b.AddAlias(req.Alias)
	}); err != nil {
		h.writeLookupError(w, r, err, "bank")
		return
	}

	v, err := h.set.Banks.GetCurrentVersion(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

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

func (h *Handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accounts := h.set.Accounts.AllCurrent(ctx)
	query := r.URL.Query()
	switch {
	case query.Get("bank_id") != "":
		bankID, err := domain.ParseBankID(query.Get("bank_id"))
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		accounts = h.set.Accounts.ByBank(ctx, bankID)
	case query.Get("currency") != "":
		accounts = h.set.Accounts.ByCurrency(ctx, query.Get("currency"))
	case query.Get("type") != "":
		accounts = h.set.Accounts.ByType(ctx, models.AccountType(query.Get("type")))
	case query.Get("overdrawn") == "true":
		accounts = h.set.Accounts.Overdrawn(ctx)
	}
	shared.WriteJSON(w, http.StatusOK, accounts)
}

func (h *Handler) handleAccountBalances(w http.ResponseWriter, r *http.Request) {
	totals := h.set.Accounts.TotalBalanceByCurrency(r.Context())
	out := make(map[string]string, len(totals))
	for currency, total := range totals {
		out[currency] = total.String()
	}
	shared.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	ctx := r.Context()
	bankID, err := h.set.Banks.ResolveID(ctx, req.Bank)
	if err != nil {
		shared.WriteError(w, dErrors.Newf(dErrors.CodeInvalidInput, "unknown bank %q", req.Bank))
		return
	}

	v := h.set.Accounts.Register(ctx, models.Account{
		Name:           req.Name,
		Number:         req.Number,
		BankID:         bankID,
		Type:           req.Type,
		Currency:       req.Currency,
		OpeningBalance: req.OpeningBalance,
		CurrentBalance: req.OpeningBalance,
	})
	shared.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	v, err := h.set.Accounts.GetCurrentVersion(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, r, err, "account")
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleAccountVersions(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, h.set.Accounts.GetAllVersions(r.Context(), id))
}

func (h *Handler) handleAccountAt(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	at, err := timeParam(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	v, err := h.set.Accounts.GetAtTime(r.Context(), id, at)
	if err != nil {
		h.writeLookupError(w, r, err, "account")
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req accountUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	ctx := r.Context()
	bankID, err := h.set.Banks.ResolveID(ctx, req.Bank)
	if err != nil {
		shared.WriteError(w, dErrors.Newf(dErrors.CodeInvalidInput, "unknown bank %q", req.Bank))
		return
	}

	if _, err := h.set.Accounts.Update(ctx, id, req.ChangeReason, func(a *models.Account) {
		a.Name = req.Name
		a.BankID = bankID
		a.Type = req.Type
		a.Currency = req.Currency
	}); err != nil {
		h.writeLookupError(w, r, err, "account")
		return
	}

	v, err := h.set.Accounts.GetCurrentVersion(ctx, id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) handleUpdateAccountBalance(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req balanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if _, err := h.set.Accounts.UpdateBalance(r.Context(), id, req.Balance, req.Reason); err != nil {
		h.writeLookupError(w, r, err, "account")
		return
	}

	v, err := h.set.Accounts.GetCurrentVersion(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, v)
}

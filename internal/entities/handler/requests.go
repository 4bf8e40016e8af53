package handler

import (
	"github.com/shopspring/decimal"

	"bookkeeper/internal/entities/models"
	dErrors "bookkeeper/pkg/domain-errors"
)

type bankRequest struct {
	CanonicalName string          `json:"canonical_name"`
	Aliases       []string        `json:"aliases"`
	Country       string          `json:"country"`
	Type          models.BankType `json:"type"`
	ChangeReason  string          `json:"change_reason"`
}

func (req bankRequest) validate() error {
	if req.CanonicalName == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "canonical_name is required")
	}
	return nil
}

type merchantRequest struct {
	CanonicalName     string              `json:"canonical_name"`
	Aliases           []string            `json:"aliases"`
	Type              models.MerchantType `json:"type"`
	SuggestedCategory string              `json:"suggested_category"`
	ChangeReason      string              `json:"change_reason"`
}

func (req merchantRequest) validate() error {
	if req.CanonicalName == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "canonical_name is required")
	}
	return nil
}

type categoryRequest struct {
	Name         string              `json:"name"`
	ParentID     *string             `json:"parent_id"`
	Kind         models.CategoryKind `json:"kind"`
	Icon         string              `json:"icon"`
	Color        string              `json:"color"`
	ChangeReason string              `json:"change_reason"`
}

func (req categoryRequest) validate() error {
	if req.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}
	return nil
}

type moveCategoryRequest struct {
	// ParentID nil moves the category to the root.
	ParentID *string `json:"parent_id"`
}

type aliasRequest struct {
	Alias string `json:"alias"`
}

func (req aliasRequest) validate() error {
	if req.Alias == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "alias is required")
	}
	return nil
}

type accountRequest struct {
	Name string `json:"name"`
	// Number is the full account number; only the masked form is stored.
	Number string `json:"number"`
	// Bank is free text and goes through the resolver, so statement
	// spellings like "BofA" work here too.
	Bank           string             `json:"bank"`
	Type           models.AccountType `json:"type"`
	Currency       string             `json:"currency"`
	OpeningBalance decimal.Decimal    `json:"opening_balance"`
}

func (req accountRequest) validate() error {
	switch {
	case req.Name == "":
		return dErrors.New(dErrors.CodeInvalidInput, "name is required")
	case req.Bank == "":
		return dErrors.New(dErrors.CodeInvalidInput, "bank is required")
	case req.Currency == "":
		return dErrors.New(dErrors.CodeInvalidInput, "currency is required")
	}
	return nil
}

type accountUpdateRequest struct {
	Name string `json:"name"`
	// Bank is free text resolved like on create; balances change through
	// the balance endpoint, not here.
	Bank         string             `json:"bank"`
	Type         models.AccountType `json:"type"`
	Currency     string             `json:"currency"`
	ChangeReason string             `json:"change_reason"`
}

func (req accountUpdateRequest) validate() error {
	switch {
	case req.Name == "":
		return dErrors.New(dErrors.CodeInvalidInput, "name is required")
	case req.Bank == "":
		return dErrors.New(dErrors.CodeInvalidInput, "bank is required")
	case req.Currency == "":
		return dErrors.New(dErrors.CodeInvalidInput, "currency is required")
	}
	return nil
}

type balanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
	Reason  string          `json:"reason"`
}

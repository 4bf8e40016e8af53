// Package transactions stores imported transaction records. Records
// reference entities by identity, never by version: historical questions
// ("which bank name was current when this row was imported") are answered
// by the registries' point-in-time queries, not by denormalized copies.
package transactions

import (
	"time"

	"github.com/shopspring/decimal"

	"bookkeeper/pkg/domain"
)

// Transaction is one imported statement row after entity resolution.
type Transaction struct {
	ID          domain.TransactionID `json:"id"`
	Date        time.Time            `json:"date"`
	Description string               `json:"description"`
	// RawDescription preserves the statement text exactly as imported,
	// before any normalization.
	RawDescription string          `json:"raw_description"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`

	BankID     domain.BankID      `json:"bank_id"`
	AccountID  domain.AccountID   `json:"account_id"`
	MerchantID *domain.MerchantID `json:"merchant_id,omitempty"`
	CategoryID *domain.CategoryID `json:"category_id,omitempty"`

	ImportedAt time.Time `json:"imported_at"`
}

// Package models defines the payload types stored in the entity
// registries. Payloads are values: the registry keeps immutable snapshots
// of them per version, and Clone gives the registry the deep copies it
// hands out.
package models

import (
	"github.com/shopspring/decimal"

	"bookkeeper/internal/registry/match"
	"bookkeeper/pkg/domain"
)

// Kind names an entity kind. Used for routing, metrics labels, and audit.
type Kind string

const (
	KindBank     Kind = "bank"
	KindMerchant Kind = "merchant"
	KindCategory Kind = "category"
	KindAccount  Kind = "account"
)

// ----------------------------------------------------------------------------
// Bank
// ----------------------------------------------------------------------------

// BankType classifies a bank or bank-like institution.
type BankType string

const (
	BankChecking         BankType = "checking"
	BankSavings          BankType = "savings"
	BankCreditCard       BankType = "credit_card"
	BankPaymentProcessor BankType = "payment_processor"
	BankInvestment       BankType = "investment"
	BankUnknown          BankType = "unknown"
)

// Bank is the value payload of a bank entity. The canonical name is the
// official name used for display; aliases are alternate strings that
// resolve to the same bank.
type Bank struct {
	CanonicalName string   `json:"canonical_name"`
	Aliases       []string `json:"aliases,omitempty"`
	Country       string   `json:"country"`
	Type          BankType `json:"type"`
}

// Clone returns a deep copy.
func (b Bank) Clone() Bank {
	out := b
	out.Aliases = append([]string(nil), b.Aliases...)
	return out
}

// AddAlias appends an alias unless it duplicates an existing alias or the
// canonical name.
func (b *Bank) AddAlias(alias string) {
	if alias == b.CanonicalName {
		return
	}
	for _, a := range b.Aliases {
		if a == alias {
			return
		}
	}
	b.Aliases = append(b.Aliases, alias)
}

// AllNames returns the canonical name followed by every alias.
func (b Bank) AllNames() []string {
	return append([]string{b.CanonicalName}, b.Aliases...)
}

// Candidate adapts the bank for the matching engine.
func (b Bank) Candidate() match.Candidate {
	return match.Candidate{Canonical: b.CanonicalName, Aliases: b.Aliases}
}

// ----------------------------------------------------------------------------
// Merchant
// ----------------------------------------------------------------------------

// MerchantType classifies a merchant.
type MerchantType string

const (
	MerchantRestaurant     MerchantType = "restaurant"
	MerchantRetail         MerchantType = "retail"
	MerchantTransportation MerchantType = "transportation"
	MerchantEntertainment  MerchantType = "entertainment"
	MerchantFinancial      MerchantType = "financial"
	MerchantSubscription   MerchantType = "subscription"
	MerchantOther          MerchantType = "other"
)

// Merchant is the value payload of a merchant entity. SuggestedCategory
// names the category the classifier should propose for this merchant's
// transactions.
type Merchant struct {
	CanonicalName     string       `json:"canonical_name"`
	Aliases           []string     `json:"aliases,omitempty"`
	Type              MerchantType `json:"type"`
	SuggestedCategory string       `json:"suggested_category,omitempty"`
}

// Clone returns a deep copy.
func (m Merchant) Clone() Merchant {
	out := m
	out.Aliases = append([]string(nil), m.Aliases...)
	return out
}

// AddAlias appends an alias unless it duplicates an existing alias or the
// canonical name.
func (m *Merchant) AddAlias(alias string) {
	if alias == m.CanonicalName {
		return
	}
	for _, a := range m.Aliases {
		if a == alias {
			return
		}
	}
	m.Aliases = append(m.Aliases, alias)
}

// AllNames returns the canonical name followed by every alias.
func (m Merchant) AllNames() []string {
	return append([]string{m.CanonicalName}, m.Aliases...)
}

// Candidate adapts the merchant for the matching engine.
func (m Merchant) Candidate() match.Candidate {
	return match.Candidate{Canonical: m.CanonicalName, Aliases: m.Aliases}
}

// ----------------------------------------------------------------------------
// Category
// ----------------------------------------------------------------------------

// CategoryKind separates expense, income, and transfer categories.
type CategoryKind string

const (
	CategoryExpense  CategoryKind = "expense"
	CategoryIncome   CategoryKind = "income"
	CategoryTransfer CategoryKind = "transfer"
)

// Category is the value payload of a category entity. ParentID references
// another category entity by identity; nil means root. The parent
// reference is what forms the category tree.
type Category struct {
	Name     string             `json:"name"`
	ParentID *domain.CategoryID `json:"parent_id,omitempty"`
	Kind     CategoryKind       `json:"kind"`
	Icon     string             `json:"icon,omitempty"`
	Color    string             `json:"color,omitempty"`
}

// Clone returns a deep copy.
func (c Category) Clone() Category {
	out := c
	if c.ParentID != nil {
		parent := *c.ParentID
		out.ParentID = &parent
	}
	return out
}

// IsRoot reports whether the category has no parent.
func (c Category) IsRoot() bool { return c.ParentID == nil }

// ----------------------------------------------------------------------------
// Account
// ----------------------------------------------------------------------------

// AccountType classifies an account.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
	AccountOther      AccountType = "other"
)

// Account is the value payload of an account entity. Number holds the
// masked account number (last four digits, e.g. "*1234"); BankID
// references the owning bank entity. Balances are decimal so cents
// survive arithmetic.
type Account struct {
	Name           string          `json:"name"`
	Number         string          `json:"number"`
	BankID         domain.BankID   `json:"bank_id"`
	Type           AccountType     `json:"type"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// Clone returns a deep copy. decimal.Decimal is immutable, so a struct
// copy suffices.
func (a Account) Clone() Account { return a }

// BalanceChange returns current minus opening balance.
func (a Account) BalanceChange() decimal.Decimal {
	return a.CurrentBalance.Sub(a.OpeningBalance)
}

// IsOverdrawn reports whether the current balance is negative.
func (a Account) IsOverdrawn() bool {
	return a.CurrentBalance.IsNegative()
}

// MaskNumber reduces a full account number to its masked form: "*" plus
// the last four digits. Numbers of four characters or fewer pass through
// unchanged.
func MaskNumber(full string) string {
	if len(full) <= 4 {
		return full
	}
	return "*" + full[len(full)-4:]
}

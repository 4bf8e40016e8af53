package entities

import "bookkeeper/internal/registry"

// Set bundles the four entity registries. Callers construct a Set
// explicitly and pass it where needed; nothing in this package holds
// global state, so tests can build as many independent Sets as they like.
type Set struct {
	Banks      *BankRegistry
	Merchants  *MerchantRegistry
	Categories *CategoryRegistry
	Accounts   *AccountRegistry
}

// NewSet creates a Set of empty registries. Options (such as a mutation
// hook feeding the audit trail) apply to all four.
func NewSet(opts ...registry.Option) *Set {
	return &Set{
		Banks:      NewBankRegistry(opts...),
		Merchants:  NewMerchantRegistry(opts...),
		Categories: NewCategoryRegistry(opts...),
		Accounts:   NewAccountRegistry(opts...),
	}
}

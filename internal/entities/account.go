package entities

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bookkeeper/internal/entities/models"
	"bookkeeper/internal/registry"
	"bookkeeper/internal/registry/match"
	"bookkeeper/pkg/domain"
)

// AccountRegistry owns the version log for account entities. Balance
// changes are updates like any other, so the full balance history of an
// account is its version history.
type AccountRegistry struct {
	reg *registry.Registry[models.Account]
}

// NewAccountRegistry creates an empty account registry.
func NewAccountRegistry(opts ...registry.Option) *AccountRegistry {
	return &AccountRegistry{reg: registry.New[models.Account](string(models.KindAccount), opts...)}
}

// Register creates a new account entity. The stored number is always the
// masked form.
func (r *AccountRegistry) Register(ctx context.Context, account models.Account) registry.Version[models.Account] {
	account.Number = models.MaskNumber(account.Number)
	return r.reg.Register(ctx, domain.NewAccountID().String(), account, "")
}

// GetAllVersions returns every version of an account in append order.
func (r *AccountRegistry) GetAllVersions(ctx context.Context, id domain.AccountID) []registry.Version[models.Account] {
	return r.reg.GetAllVersions(ctx, id.String())
}

// GetCurrentVersion returns the account's current version.
func (r *AccountRegistry) GetCurrentVersion(ctx context.Context, id domain.AccountID) (registry.Version[models.Account], error) {
	return r.reg.GetCurrentVersion(ctx, id.String())
}

// GetAtTime returns the account's version as of a specific instant. This
// is how "what was the balance on June 30" is answered.
func (r *AccountRegistry) GetAtTime(ctx context.Context, id domain.AccountID, at time.Time) (registry.Version[models.Account], error) {
	return r.reg.GetAtTime(ctx, id.String(), at)
}

// Update expires the current version and appends a successor with the
// mutation applied.
func (r *AccountRegistry) Update(ctx context.Context, id domain.AccountID, reason string, mutate func(*models.Account)) (int64, error) {
	return r.reg.Update(ctx, id.String(), reason, mutate)
}

// UpdateBalance records a new current balance as a new version.
func (r *AccountRegistry) UpdateBalance(ctx context.Context, id domain.AccountID, balance decimal.Decimal, reason string) (int64, error) {
	return r.Update(ctx, id, reason, func(a *models.Account) {
		a.CurrentBalance = balance
	})
}

// AllCurrent returns the current version of every account.
func (r *AccountRegistry) AllCurrent(ctx context.Context) []registry.Version[models.Account] {
	return r.reg.AllCurrent(ctx)
}

// Count returns the number of accounts with a current version.
func (r *AccountRegistry) Count(ctx context.Context) int {
	return r.reg.Count(ctx)
}

// FindByName returns the account whose name matches exactly,
// case-insensitively.
func (r *AccountRegistry) FindByName(ctx context.Context, name string) (registry.Version[models.Account], error) {
	lower := strings.ToLower(name)
	return r.reg.FindCurrent(ctx, func(a models.Account) bool {
		return strings.ToLower(a.Name) == lower
	})
}

// FindByString resolves a free-text account string through the matching
// engine against account names.
func (r *AccountRegistry) FindByString(ctx context.Context, s string) (registry.Version[models.Account], match.Tier, error) {
	return resolveString(ctx, r.reg, s, func(a models.Account) match.Candidate {
		return match.Candidate{Canonical: a.Name}
	})
}

// FindByNumber returns the account with the given masked number. Full
// numbers are masked before comparison, so either form finds the account.
func (r *AccountRegistry) FindByNumber(ctx context.Context, number string) (registry.Version[models.Account], error) {
	masked := models.MaskNumber(number)
	return r.reg.FindCurrent(ctx, func(a models.Account) bool {
		return a.Number == masked
	})
}

// FindByID returns the account's current version.
func (r *AccountRegistry) FindByID(ctx context.Context, id domain.AccountID) (registry.Version[models.Account], error) {
	return r.GetCurrentVersion(ctx, id)
}

// ByBank filters current accounts by owning bank.
func (r *AccountRegistry) ByBank(ctx context.Context, bankID domain.BankID) []registry.Version[models.Account] {
	return r.reg.FilterCurrent(ctx, func(a models.Account) bool { return a.BankID == bankID })
}

// ByType filters current accounts by type.
func (r *AccountRegistry) ByType(ctx context.Context, t models.AccountType) []registry.Version[models.Account] {
	return r.reg.FilterCurrent(ctx, func(a models.Account) bool { return a.Type == t })
}

// ByCurrency filters current accounts by currency code.
func (r *AccountRegistry) ByCurrency(ctx context.Context, currency string) []registry.Version[models.Account] {
	return r.reg.FilterCurrent(ctx, func(a models.Account) bool { return a.Currency == currency })
}

// Overdrawn returns the current accounts with a negative balance.
func (r *AccountRegistry) Overdrawn(ctx context.Context) []registry.Version[models.Account] {
	return r.reg.FilterCurrent(ctx, func(a models.Account) bool { return a.IsOverdrawn() })
}

// TotalBalance sums current balances across all accounts in the given
// currency.
func (r *AccountRegistry) TotalBalance(ctx context.Context, currency string) decimal.Decimal {
	total := decimal.Zero
	for _, v := range r.ByCurrency(ctx, currency) {
		total = total.Add(v.Value.CurrentBalance)
	}
	return total
}

// TotalBalanceByCurrency sums current balances grouped by currency.
func (r *AccountRegistry) TotalBalanceByCurrency(ctx context.Context) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, v := range r.reg.AllCurrent(ctx) {
		totals[v.Value.Currency] = totals[v.Value.Currency].Add(v.Value.CurrentBalance)
	}
	return totals
}

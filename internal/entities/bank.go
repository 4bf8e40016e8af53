// Package entities composes the generic bitemporal registry with the
// per-kind payload types, the matching engine, and the category
// hierarchy. One typed registry per entity kind wraps the shared core;
// the Set bundles all four for explicit wiring at startup.
package entities

import (
	"context"
	"strings"
	"time"

	"bookkeeper/internal/entities/models"
	"bookkeeper/internal/registry"
	"bookkeeper/internal/registry/match"
	"bookkeeper/pkg/domain"
)

// resolveString scans current entities in registration order and returns
// the first one the matcher accepts, together with the winning tier.
func resolveString[T registry.Value[T]](
	ctx context.Context,
	reg *registry.Registry[T],
	query string,
	candidate func(T) match.Candidate,
) (registry.Version[T], match.Tier, error) {
	tier := match.TierNone
	v, err := reg.FindCurrent(ctx, func(value T) bool {
		t, ok := match.Match(query, candidate(value))
		if ok {
			tier = t
		}
		return ok
	})
	if err != nil {
		var zero registry.Version[T]
		return zero, match.TierNone, err
	}
	return v, tier, nil
}

// BankRegistry owns the version log for bank entities.
type BankRegistry struct {
	reg *registry.Registry[models.Bank]
}

// NewBankRegistry creates an empty bank registry.
func NewBankRegistry(opts ...registry.Option) *BankRegistry {
	return &BankRegistry{reg: registry.New[models.Bank](string(models.KindBank), opts...)}
}

// Register creates a new bank entity: fresh identity, version 1, valid
// from now.
func (r *BankRegistry) Register(ctx context.Context, bank models.Bank) registry.Version[models.Bank] {
	return r.reg.Register(ctx, domain.NewBankID().String(), bank, "")
}

// GetAllVersions returns every version of a bank in append order.
func (r *BankRegistry) GetAllVersions(ctx context.Context, id domain.BankID) []registry.Version[models.Bank] {
	return r.reg.GetAllVersions(ctx, id.String())
}

// GetCurrentVersion returns the bank's current version.
func (r *BankRegistry) GetCurrentVersion(ctx context.Context, id domain.BankID) (registry.Version[models.Bank], error) {
	return r.reg.GetCurrentVersion(ctx, id.String())
}

// GetAtTime returns the bank's version as of a specific instant.
func (r *BankRegistry) GetAtTime(ctx context.Context, id domain.BankID, at time.Time) (registry.Version[models.Bank], error) {
	return r.reg.GetAtTime(ctx, id.String(), at)
}

// Update expires the current version and appends a successor with the
// mutation applied.
func (r *BankRegistry) Update(ctx context.Context, id domain.BankID, reason string, mutate func(*models.Bank)) (int64, error) {
	return r.reg.Update(ctx, id.String(), reason, mutate)
}

// AllCurrent returns the current version of every bank.
func (r *BankRegistry) AllCurrent(ctx context.Context) []registry.Version[models.Bank] {
	return r.reg.AllCurrent(ctx)
}

// Count returns the number of banks with a current version.
func (r *BankRegistry) Count(ctx context.Context) int {
	return r.reg.Count(ctx)
}

// FindByString resolves a free-text bank string (statement header, user
// input) through the matching engine. Candidates are scanned in
// registration order; the first hit on any tier wins.
func (r *BankRegistry) FindByString(ctx context.Context, s string) (registry.Version[models.Bank], match.Tier, error) {
	return resolveString(ctx, r.reg, s, models.Bank.Candidate)
}

// FindByName returns the bank whose canonical name matches exactly,
// case-insensitively.
func (r *BankRegistry) FindByName(ctx context.Context, name string) (registry.Version[models.Bank], error) {
	lower := strings.ToLower(name)
	return r.reg.FindCurrent(ctx, func(b models.Bank) bool {
		return strings.ToLower(b.CanonicalName) == lower
	})
}

// FindByID returns the bank's current version.
func (r *BankRegistry) FindByID(ctx context.Context, id domain.BankID) (registry.Version[models.Bank], error) {
	return r.GetCurrentVersion(ctx, id)
}

// ByType filters current banks by type.
func (r *BankRegistry) ByType(ctx context.Context, t models.BankType) []registry.Version[models.Bank] {
	return r.reg.FilterCurrent(ctx, func(b models.Bank) bool { return b.Type == t })
}

// ByCountry filters current banks by ISO country code.
func (r *BankRegistry) ByCountry(ctx context.Context, country string) []registry.Version[models.Bank] {
	return r.reg.FilterCurrent(ctx, func(b models.Bank) bool { return b.Country == country })
}

// CanonicalName maps a free-text bank string to the canonical name,
// e.g. "BofA" -> "Bank of America".
func (r *BankRegistry) CanonicalName(ctx context.Context, s string) (string, error) {
	v, _, err := r.FindByString(ctx, s)
	if err != nil {
		return "", err
	}
	return v.Value.CanonicalName, nil
}

// ResolveID maps a free-text bank string to the stable identity that
// transaction records store as a foreign key.
func (r *BankRegistry) ResolveID(ctx context.Context, s string) (domain.BankID, error) {
	v, _, err := r.FindByString(ctx, s)
	if err != nil {
		return domain.BankID{}, err
	}
	return domain.ParseBankID(v.EntityID)
}

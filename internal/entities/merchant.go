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

// MerchantRegistry owns the version log for merchant entities.
type MerchantRegistry struct {
	reg *registry.Registry[models.Merchant]
}

// NewMerchantRegistry creates an empty merchant registry.
func NewMerchantRegistry(opts ...registry.Option) *MerchantRegistry {
	return &MerchantRegistry{reg: registry.New[models.Merchant](string(models.KindMerchant), opts...)}
}

// Register creates a new merchant entity: fresh identity, version 1,
// valid from now.
func (r *MerchantRegistry) Register(ctx context.Context, merchant models.Merchant) registry.Version[models.Merchant] {
	return r.reg.Register(ctx, domain.NewMerchantID().String(), merchant, "")
}

// GetAllVersions returns every version of a merchant in append order.
func (r *MerchantRegistry) GetAllVersions(ctx context.Context, id domain.MerchantID) []registry.Version[models.Merchant] {
	return r.reg.GetAllVersions(ctx, id.String())
}

// GetCurrentVersion returns the merchant's current version.
func (r *MerchantRegistry) GetCurrentVersion(ctx context.Context, id domain.MerchantID) (registry.Version[models.Merchant], error) {
	return r.reg.GetCurrentVersion(ctx, id.String())
}

// GetAtTime returns the merchant's version as of a specific instant.
func (r *MerchantRegistry) GetAtTime(ctx context.Context, id domain.MerchantID, at time.Time) (registry.Version[models.Merchant], error) {
	return r.reg.GetAtTime(ctx, id.String(), at)
}

// Update expires the current version and appends a successor with the
// mutation applied.
func (r *MerchantRegistry) Update(ctx context.Context, id domain.MerchantID, reason string, mutate func(*models.Merchant)) (int64, error) {
	return r.reg.Update(ctx, id.String(), reason, mutate)
}

// AddAlias records an alternate statement string for a merchant, e.g.
// teaching "AMZN MKTP" to resolve to Amazon.
func (r *MerchantRegistry) AddAlias(ctx context.Context, id domain.MerchantID, alias string) (int64, error) {
	return r.Update(ctx, id, "add alias "+alias, func(m *models.Merchant) {
		m.AddAlias(alias)
	})
}

// AllCurrent returns the current version of every merchant.
func (r *MerchantRegistry) AllCurrent(ctx context.Context) []registry.Version[models.Merchant] {
	return r.reg.AllCurrent(ctx)
}

// Count returns the number of merchants with a current version.
func (r *MerchantRegistry) Count(ctx context.Context) int {
	return r.reg.Count(ctx)
}

// FindByString resolves a raw statement descriptor ("STARBUCKS *123")
// through the matching engine. Candidates are scanned in registration
// order; the first hit on any tier wins.
func (r *MerchantRegistry) FindByString(ctx context.Context, s string) (registry.Version[models.Merchant], match.Tier, error) {
	return resolveString(ctx, r.reg, s, models.Merchant.Candidate)
}

// FindByName returns the merchant whose canonical name matches exactly,
// case-insensitively.
func (r *MerchantRegistry) FindByName(ctx context.Context, name string) (registry.Version[models.Merchant], error) {
	lower := strings.ToLower(name)
	return r.reg.FindCurrent(ctx, func(m models.Merchant) bool {
		return strings.ToLower(m.CanonicalName) == lower
	})
}

// FindByID returns the merchant's current version.
func (r *MerchantRegistry) FindByID(ctx context.Context, id domain.MerchantID) (registry.Version[models.Merchant], error) {
	return r.GetCurrentVersion(ctx, id)
}

// ByType filters current merchants by type.
func (r *MerchantRegistry) ByType(ctx context.Context, t models.MerchantType) []registry.Version[models.Merchant] {
	return r.reg.FilterCurrent(ctx, func(m models.Merchant) bool { return m.Type == t })
}

// CanonicalName maps a raw statement descriptor to the canonical
// merchant name.
func (r *MerchantRegistry) CanonicalName(ctx context.Context, s string) (string, error) {
	v, _, err := r.FindByString(ctx, s)
	if err != nil {
		return "", err
	}
	return v.Value.CanonicalName, nil
}

// ResolveID maps a raw statement descriptor to the stable merchant
// identity.
func (r *MerchantRegistry) ResolveID(ctx context.Context, s string) (domain.MerchantID, error) {
	v, _, err := r.FindByString(ctx, s)
	if err != nil {
		return domain.MerchantID{}, err
	}
	return domain.ParseMerchantID(v.EntityID)
}

// SuggestCategory resolves a raw statement descriptor and returns the
// matched merchant's suggested category name, for pre-filling the
// category on imported transactions.
func (r *MerchantRegistry) SuggestCategory(ctx context.Context, s string) (string, error) {
	v, _, err := r.FindByString(ctx, s)
	if err != nil {
		return "", err
	}
	return v.Value.SuggestedCategory, nil
}

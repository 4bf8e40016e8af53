package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookkeeper/internal/entities/models"
	"bookkeeper/internal/registry/match"
	"bookkeeper/pkg/platform/sentinel"
)

func TestMerchantResolvesRawDescriptors(t *testing.T) {
	set, ctx := newSeededSet(t)

	cases := []struct {
		descriptor string
		canonical  string
	}{
		{"STARBUCKS *123", "Starbucks"},
		{"Starbucks Coffee #456", "Starbucks"},
		{"AMAZON.COM", "Amazon"},
		{"AMZN Mktp US", "Amazon"},
		{"UBER *TRIP", "Uber"},
		{"NETFLIX.COM", "Netflix"},
	}
	for _, tc := range cases {
		name, err := set.Merchants.CanonicalName(ctx, tc.descriptor)
		require.NoError(t, err, "descriptor %q", tc.descriptor)
		assert.Equal(t, tc.canonical, name, "descriptor %q", tc.descriptor)
	}

	_, err := set.Merchants.CanonicalName(ctx, "Completely Unknown Vendor 9000")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMerchantSuggestCategory(t *testing.T) {
	set, ctx := newSeededSet(t)

	category, err := set.Merchants.SuggestCategory(ctx, "UBER *TRIP #456")
	require.NoError(t, err)
	assert.Equal(t, "Transportation", category)

	category, err = set.Merchants.SuggestCategory(ctx, "STARBUCKS *123")
	require.NoError(t, err)
	assert.Equal(t, "Café", category)
}

func TestMerchantAddAliasTeachesNewDescriptor(t *testing.T) {
	set, ctx := newSeededSet(t)

	v, _, err := set.Merchants.FindByString(ctx, "Netflix")
	require.NoError(t, err)
	id, err := set.Merchants.ResolveID(ctx, "Netflix")
	require.NoError(t, err)

	_, _, err = set.Merchants.FindByString(ctx, "NFLX Subscription")
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	newVersion, err := set.Merchants.AddAlias(ctx, id, "NFLX Subscription")
	require.NoError(t, err)
	assert.Equal(t, int64(2), newVersion)

	taught, tier, err := set.Merchants.FindByString(ctx, "NFLX SUBSCRIPTION")
	require.NoError(t, err)
	assert.Equal(t, match.TierAlias, tier)
	assert.Equal(t, v.EntityID, taught.EntityID)
}

func TestMerchantFirstRegisteredWinsSharedAlias(t *testing.T) {
	// "Stripe Inc" is an alias of Stripe Fees in the seed data; a later
	// merchant claiming the same alias never shadows it.
	set, ctx := newSeededSet(t)

	stripeFees, err := set.Merchants.FindByName(ctx, "Stripe Fees")
	require.NoError(t, err)

	set.Merchants.Register(ctx, models.Merchant{
		CanonicalName: "Stripe Billing",
		Aliases:       []string{"Stripe Inc"},
		Type:          models.MerchantFinancial,
	})

	v, _, err := set.Merchants.FindByString(ctx, "Stripe Inc")
	require.NoError(t, err)
	assert.Equal(t, stripeFees.EntityID, v.EntityID)
}

func TestMerchantByType(t *testing.T) {
	set, ctx := newSeededSet(t)
	assert.Len(t, set.Merchants.ByType(ctx, models.MerchantRestaurant), 1)
	assert.Len(t, set.Merchants.ByType(ctx, models.MerchantFinancial), 1)
	assert.Empty(t, set.Merchants.ByType(ctx, models.MerchantSubscription))
}

package entities

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookkeeper/internal/entities/models"
	"bookkeeper/pkg/domain"
	"bookkeeper/pkg/requestcontext"
)

func registerCheckingAccount(t *testing.T, set *Set, ctx context.Context, balance string) domain.AccountID {
	t.Helper()
	bank, err := set.Banks.FindByName(ctx, "Bank of America")
	require.NoError(t, err)
	bankID, err := domain.ParseBankID(bank.EntityID)
	require.NoError(t, err)

	opening := decimal.RequireFromString(balance)
	v := set.Accounts.Register(ctx, models.Account{
		Name:           "Everyday Checking",
		Number:         "001122334455",
		BankID:         bankID,
		Type:           models.AccountChecking,
		Currency:       "USD",
		OpeningBalance: opening,
		CurrentBalance: opening,
	})
	id, err := domain.ParseAccountID(v.EntityID)
	require.NoError(t, err)
	return id
}

func TestAccountRegisterMasksNumber(t *testing.T) {
	set, ctx := newSeededSet(t)
	id := registerCheckingAccount(t, set, ctx, "1000")

	v, err := set.Accounts.GetCurrentVersion(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "*4455", v.Value.Number)
}

func TestAccountBalanceHistory(t *testing.T) {
	set, _ := newSeededSet(t)

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), base)
	id := registerCheckingAccount(t, set, ctx, "1000")

	for i, balance := range []string{"1100", "1200", "1300"} {
		at := base.AddDate(0, 0, 7*(i+1))
		_, err := set.Accounts.UpdateBalance(
			requestcontext.WithTime(context.Background(), at),
			id,
			decimal.RequireFromString(balance),
			"weekly statement",
		)
		require.NoError(t, err)
	}

	versions := set.Accounts.GetAllVersions(ctx, id)
	require.Len(t, versions, 4)
	for i, want := range []string{"1000", "1100", "1200", "1300"} {
		assert.True(t, versions[i].Value.CurrentBalance.Equal(decimal.RequireFromString(want)),
			"version %d balance", i+1)
		assert.Equal(t, int64(i+1), versions[i].Version)
	}

	// Balance as of June 10: the first weekly update (June 8) was in
	// effect.
	mid, err := set.Accounts.GetAtTime(ctx, id, base.AddDate(0, 0, 9))
	require.NoError(t, err)
	assert.True(t, mid.Value.CurrentBalance.Equal(decimal.RequireFromString("1100")))

	current, err := set.Accounts.GetCurrentVersion(ctx, id)
	require.NoError(t, err)
	assert.True(t, current.Value.CurrentBalance.Equal(decimal.RequireFromString("1300")))
	assert.True(t, current.Value.BalanceChange().Equal(decimal.RequireFromString("300")))
	assert.True(t, current.Value.OpeningBalance.Equal(decimal.RequireFromString("1000")),
		"opening balance carries across versions")
}

func TestAccountFindByNumberAcceptsFullOrMasked(t *testing.T) {
	set, ctx := newSeededSet(t)
	id := registerCheckingAccount(t, set, ctx, "1000")

	byFull, err := set.Accounts.FindByNumber(ctx, "001122334455")
	require.NoError(t, err)
	assert.Equal(t, id.String(), byFull.EntityID)

	byMasked, err := set.Accounts.FindByNumber(ctx, "*4455")
	require.NoError(t, err)
	assert.Equal(t, id.String(), byMasked.EntityID)
}

func TestAccountFilters(t *testing.T) {
	set, ctx := newSeededSet(t)
	registerCheckingAccount(t, set, ctx, "1000")

	bank, err := set.Banks.FindByName(ctx, "Bank of America")
	require.NoError(t, err)
	bankID, err := domain.ParseBankID(bank.EntityID)
	require.NoError(t, err)

	wise, err := set.Banks.FindByName(ctx, "Wise")
	require.NoError(t, err)
	wiseID, err := domain.ParseBankID(wise.EntityID)
	require.NoError(t, err)

	set.Accounts.Register(ctx, models.Account{
		Name:           "Travel Money",
		Number:         "9876543210",
		BankID:         wiseID,
		Type:           models.AccountOther,
		Currency:       "EUR",
		OpeningBalance: decimal.RequireFromString("250"),
		CurrentBalance: decimal.RequireFromString("-40"),
	})

	assert.Len(t, set.Accounts.ByBank(ctx, bankID), 1)
	assert.Len(t, set.Accounts.ByBank(ctx, wiseID), 1)
	assert.Len(t, set.Accounts.ByType(ctx, models.AccountChecking), 1)
	assert.Len(t, set.Accounts.ByCurrency(ctx, "EUR"), 1)

	overdrawn := set.Accounts.Overdrawn(ctx)
	require.Len(t, overdrawn, 1)
	assert.Equal(t, "Travel Money", overdrawn[0].Value.Name)
}

func TestAccountTotalBalanceByCurrency(t *testing.T) {
	set, ctx := newSeededSet(t)
	registerCheckingAccount(t, set, ctx, "1000")

	wise, err := set.Banks.FindByName(ctx, "Wise")
	require.NoError(t, err)
	wiseID, err := domain.ParseBankID(wise.EntityID)
	require.NoError(t, err)

	set.Accounts.Register(ctx, models.Account{
		Name:           "Travel Money",
		Number:         "9876543210",
		BankID:         wiseID,
		Type:           models.AccountOther,
		Currency:       "EUR",
		OpeningBalance: decimal.RequireFromString("250"),
		CurrentBalance: decimal.RequireFromString("250"),
	})

	assert.True(t, set.Accounts.TotalBalance(ctx, "USD").Equal(decimal.RequireFromString("1000")))
	totals := set.Accounts.TotalBalanceByCurrency(ctx)
	require.Len(t, totals, 2)
	assert.True(t, totals["EUR"].Equal(decimal.RequireFromString("250")))
}

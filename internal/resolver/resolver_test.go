package resolver

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookkeeper/internal/entities"
	"bookkeeper/internal/entities/models"
	"bookkeeper/internal/registry/match"
	dErrors "bookkeeper/pkg/domain-errors"
)

func newTestResolver(t *testing.T) (*Resolver, context.Context) {
	t.Helper()
	ctx := context.Background()
	set := entities.NewSet()
	require.NoError(t, entities.Seed(ctx, set))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(set, nil, 0, logger, nil), ctx
}

func TestResolveBankByAlias(t *testing.T) {
	r, ctx := newTestResolver(t)

	res, err := r.Resolve(ctx, models.KindBank, "BofA")
	require.NoError(t, err)
	assert.Equal(t, models.KindBank, res.Kind)
	assert.Equal(t, "Bank of America", res.CanonicalName)
	assert.Equal(t, match.TierAlias, res.Tier)
	assert.Equal(t, int64(1), res.Version)
	assert.NotEmpty(t, res.EntityID)
}

func TestResolveMerchantDescriptor(t *testing.T) {
	r, ctx := newTestResolver(t)

	res, err := r.Resolve(ctx, models.KindMerchant, "STARBUCKS *123")
	require.NoError(t, err)
	assert.Equal(t, "Starbucks", res.CanonicalName)
	assert.Equal(t, match.TierExact, res.Tier)
}

func TestResolveCategoryByName(t *testing.T) {
	r, ctx := newTestResolver(t)

	res, err := r.Resolve(ctx, models.KindCategory, "Groceries")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", res.CanonicalName)
}

func TestResolveMissIsNotFound(t *testing.T) {
	r, ctx := newTestResolver(t)

	_, err := r.Resolve(ctx, models.KindMerchant, "Zorblatt Industries")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}

func TestResolveUnknownKind(t *testing.T) {
	r, ctx := newTestResolver(t)

	_, err := r.Resolve(ctx, models.Kind("planet"), "Earth")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeInvalidInput))
}

func TestResolveConcurrentIdenticalQueries(t *testing.T) {
	r, ctx := newTestResolver(t)

	var wg sync.WaitGroup
	results := make([]Resolution, 20)
	errs := make([]error, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = r.Resolve(ctx, models.KindBank, "TransferWise")
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, "Wise", res.CanonicalName)
		assert.Equal(t, results[0].EntityID, res.EntityID)
	}
}

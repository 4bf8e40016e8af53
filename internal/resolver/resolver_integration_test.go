//go:build integration

package resolver

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookkeeper/internal/entities"
	"bookkeeper/internal/entities/models"
	"bookkeeper/internal/platform/config"
	"bookkeeper/internal/platform/redis"
	"bookkeeper/pkg/testutil/containers"
)

func newCachedResolver(t *testing.T, ttl time.Duration) (*Resolver, *containers.RedisContainer, context.Context) {
	t.Helper()
	ctx := context.Background()
	rc := containers.NewRedisContainer(t)

	cache, err := redis.New(config.RedisConfig{
		URL:          rc.URL,
		PoolSize:     5,
		MinIdleConns: 1,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	require.NoError(t, err)
	require.NotNil(t, cache)

	set := entities.NewSet()
	require.NoError(t, entities.Seed(ctx, set))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(set, cache, ttl, logger, nil), rc, ctx
}

func TestResolveWritesThroughCache(t *testing.T) {
	r, rc, ctx := newCachedResolver(t, time.Minute)

	res, err := r.Resolve(ctx, models.KindMerchant, "STARBUCKS *123")
	require.NoError(t, err)
	assert.Equal(t, "Starbucks", res.CanonicalName)

	// The normalized query must now be cached.
	cached, err := rc.Client.Get(ctx, "resolve:merchant:starbucks").Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(cached), res.EntityID)

	// Variant spellings normalize to the same key and hit the cache.
	again, err := r.Resolve(ctx, models.KindMerchant, "Starbucks #99")
	require.NoError(t, err)
	assert.Equal(t, res.EntityID, again.EntityID)
}

func TestResolveCacheEntryExpires(t *testing.T) {
	r, rc, ctx := newCachedResolver(t, 50*time.Millisecond)

	_, err := r.Resolve(ctx, models.KindBank, "BofA")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		err := rc.Client.Get(ctx, "resolve:bank:bofa").Err()
		return err != nil
	}, time.Second, 20*time.Millisecond)
}

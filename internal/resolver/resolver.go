// Package resolver is the single entry point for turning free-text names
// from statements into canonical entities. It fronts the registries'
// matching scans with a Redis cache and collapses concurrent identical
// lookups, since imports hit the same merchant strings row after row.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"bookkeeper/internal/entities"
	"bookkeeper/internal/entities/models"
	"bookkeeper/internal/platform/metrics"
	"bookkeeper/internal/platform/redis"
	"bookkeeper/internal/registry/match"
	dErrors "bookkeeper/pkg/domain-errors"
	"bookkeeper/pkg/platform/sentinel"
)

var tracer = otel.Tracer("bookkeeper/resolver")

// Resolution is the outcome of resolving a free-text name.
type Resolution struct {
	Kind          models.Kind `json:"kind"`
	EntityID      string      `json:"entity_id"`
	CanonicalName string      `json:"canonical_name"`
	Tier          match.Tier  `json:"tier"`
	Version       int64       `json:"version"`
}

// Resolver resolves free-text names against the entity registries.
type Resolver struct {
	set      *entities.Set
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
	group    singleflight.Group
}

// New creates a Resolver. cache may be nil (cache disabled); metrics may
// be nil in tests.
func New(set *entities.Set, cache *redis.Client, cacheTTL time.Duration, logger *slog.Logger, m *metrics.Metrics) *Resolver {
	return &Resolver{
		set:      set,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		metrics:  m,
	}
}

// Resolve maps a free-text query to a canonical entity of the given kind.
// Misses return a not_found domain error. Results are cached under the
// normalized query for the configured TTL, so a freshly taught alias is
// picked up within one TTL window at worst.
func (r *Resolver) Resolve(ctx context.Context, kind models.Kind, query string) (Resolution, error) {
	ctx, span := tracer.Start(ctx, "resolver.Resolve", trace.WithAttributes(
		attribute.String("entity.kind", string(kind)),
	))
	defer span.End()

	key := cacheKey(kind, query)
	if res, ok := r.fromCache(ctx, key); ok {
		if r.metrics != nil {
			r.metrics.RecordCacheHit(string(kind))
		}
		return res, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		return r.lookup(ctx, kind, query)
	})
	if err != nil {
		return Resolution{}, err
	}
	res := v.(Resolution)

	r.toCache(ctx, key, res)
	return res, nil
}

func (r *Resolver) lookup(ctx context.Context, kind models.Kind, query string) (Resolution, error) {
	res := Resolution{Kind: kind}
	var err error

	switch kind {
	case models.KindBank:
		v, tier, ferr := r.set.Banks.FindByString(ctx, query)
		res.EntityID, res.CanonicalName, res.Tier, res.Version, err = v.EntityID, v.Value.CanonicalName, tier, v.Version, ferr
	case models.KindMerchant:
		v, tier, ferr := r.set.Merchants.FindByString(ctx, query)
		res.EntityID, res.CanonicalName, res.Tier, res.Version, err = v.EntityID, v.Value.CanonicalName, tier, v.Version, ferr
	case models.KindCategory:
		v, tier, ferr := r.set.Categories.FindByString(ctx, query)
		res.EntityID, res.CanonicalName, res.Tier, res.Version, err = v.EntityID, v.Value.Name, tier, v.Version, ferr
	case models.KindAccount:
		v, tier, ferr := r.set.Accounts.FindByString(ctx, query)
		res.EntityID, res.CanonicalName, res.Tier, res.Version, err = v.EntityID, v.Value.Name, tier, v.Version, ferr
	default:
		return Resolution{}, dErrors.Newf(dErrors.CodeInvalidInput, "unknown entity kind %q", kind)
	}

	if err != nil {
		if r.metrics != nil {
			r.metrics.RecordResolve(string(kind), string(match.TierNone))
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return Resolution{}, dErrors.Newf(dErrors.CodeNotFound, "no %s matches %q", kind, query)
		}
		return Resolution{}, err
	}

	if r.metrics != nil {
		r.metrics.RecordResolve(string(kind), string(res.Tier))
	}
	return res, nil
}

func cacheKey(kind models.Kind, query string) string {
	return fmt.Sprintf("resolve:%s:%s", kind, match.Normalize(query))
}

func (r *Resolver) fromCache(ctx context.Context, key string) (Resolution, bool) {
	if r.cache == nil {
		return Resolution{}, false
	}
	raw, err := r.cache.Get(ctx, key).Bytes()
	if err != nil {
		return Resolution{}, false
	}
	var res Resolution
	if err := json.Unmarshal(raw, &res); err != nil {
		return Resolution{}, false
	}
	return res, true
}

func (r *Resolver) toCache(ctx context.Context, key string, res Resolution) {
	if r.cache == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, raw, r.cacheTTL).Err(); err != nil {
		r.logger.WarnContext(ctx, "failed to cache resolution",
			"error", err,
			"key", key,
		)
	}
}

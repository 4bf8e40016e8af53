package registry

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bookkeeper/pkg/platform/sentinel"
	"bookkeeper/pkg/requestcontext"
)

var tracer = otel.Tracer("bookkeeper/registry")

// Action names a registry mutation for hooks and audit.
type Action string

const (
	ActionRegister Action = "register"
	ActionUpdate   Action = "update"
)

// Mutation describes a completed registry mutation. Hooks receive it after
// the write lock has been released.
type Mutation struct {
	Kind     string
	EntityID string
	Action   Action
	Actor    string
	Version  int64
	At       time.Time
}

// MutationHook observes registry mutations (audit trail, metrics). Hooks
// must not call back into the registry.
type MutationHook func(ctx context.Context, m Mutation)

// Version is one stored entry of the append-only log: an entity identity
// plus one versioned snapshot of its payload.
type Version[T Value[T]] struct {
	EntityID string `json:"entity_id"`
	VersionedValue[T]
}

// clone deep-copies the stored entry so callers never share backing state
// with the log.
func (v Version[T]) clone() Version[T] {
	out := v
	out.VersionedValue = v.VersionedValue.clone()
	return out
}

// Registry owns the append-only version log for one entity kind.
//
// All reads scan the log under a shared lock and return independent
// copies; reference-entity cardinality is small relative to transaction
// volume, so O(n) scans are acceptable. Update holds the exclusive lock
// across the whole find-expire-append sequence, so at most one version
// per identity is current even under concurrent updates.
type Registry[T Value[T]] struct {
	kind string
	hook MutationHook

	mu  sync.RWMutex
	log []Version[T]
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	hook MutationHook
}

// WithHook installs a mutation hook.
func WithHook(h MutationHook) Option {
	return func(o *options) { o.hook = h }
}

// New creates an empty registry for the given entity kind.
func New[T Value[T]](kind string, opts ...Option) *Registry[T] {
	cfg := &options{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Registry[T]{kind: kind, hook: cfg.hook}
}

// Kind returns the entity kind this registry owns.
func (r *Registry[T]) Kind() string { return r.kind }

// Register appends version 1 for a new identity. No uniqueness check is
// performed against existing names; duplicate canonical names across
// different identities are permitted.
func (r *Registry[T]) Register(ctx context.Context, id string, value T, businessTime string) Version[T] {
	now := requestcontext.Now(ctx)
	actor := requestcontext.Actor(ctx)

	v := Version[T]{
		EntityID:       id,
		VersionedValue: NewVersionedValue(value.Clone(), businessTime, actor, now),
	}

	r.mu.Lock()
	r.log = append(r.log, v)
	r.mu.Unlock()

	r.emit(ctx, Mutation{
		Kind:     r.kind,
		EntityID: id,
		Action:   ActionRegister,
		Actor:    actor,
		Version:  v.Version,
		At:       now,
	})
	return v.clone()
}

// GetAllVersions returns every version for an identity in append order,
// which equals version order because the log is append-only and versions
// are monotonic.
func (r *Registry[T]) GetAllVersions(ctx context.Context, id string) []Version[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Version[T]
	for _, v := range r.log {
		if v.EntityID == id {
			out = append(out, v.clone())
		}
	}
	return out
}

// GetCurrentVersion returns the unique version of an identity with no
// valid-until. If that invariant is ever violated, the first match in
// append order wins; this tie-break is deterministic and documented.
func (r *Registry[T]) GetCurrentVersion(ctx context.Context, id string) (Version[T], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.currentLocked(id)
}

func (r *Registry[T]) currentLocked(id string) (Version[T], error) {
	for _, v := range r.log {
		if v.EntityID == id && v.IsCurrent() {
			return v.clone(), nil
		}
	}
	var zero Version[T]
	return zero, sentinel.ErrNotFound
}

// GetAtTime returns the version whose valid-time interval contains the
// given instant, or sentinel.ErrNotFound when the instant precedes the
// entity's first valid-from (or the identity is unknown).
func (r *Registry[T]) GetAtTime(ctx context.Context, id string, at time.Time) (Version[T], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.log {
		if v.EntityID == id && v.WasValidAt(at) {
			return v.clone(), nil
		}
	}
	var zero Version[T]
	return zero, sentinel.ErrNotFound
}

// Update expires the current version and appends its successor with the
// mutation applied. The whole find-expire-append sequence runs under the
// exclusive lock, and both the expired version's valid-until and the new
// version's valid-from come from a single captured instant, so the
// temporal handoff has no gap and no overlap.
//
// Returns the new version number, or sentinel.ErrNotFound when the
// identity has no current version.
func (r *Registry[T]) Update(ctx context.Context, id, reason string, mutate func(*T)) (int64, error) {
	ctx, span := tracer.Start(ctx, "registry.Update", trace.WithAttributes(
		attribute.String("entity.kind", r.kind),
		attribute.String("entity.id", id),
	))
	defer span.End()

	now := requestcontext.Now(ctx)
	actor := requestcontext.Actor(ctx)

	r.mu.Lock()
	idx := -1
	for i := range r.log {
		if r.log[i].EntityID == id && r.log[i].IsCurrent() {
			idx = i
			break
		}
	}
	if idx == -1 {
		r.mu.Unlock()
		return 0, sentinel.ErrNotFound
	}

	current := r.log[idx]
	next := current.VersionedValue.NextVersion(current.Value.Clone(), actor, reason, now)
	mutate(&next.Value)

	r.log[idx].Time = current.Time.Closed(now)
	r.log = append(r.log, Version[T]{EntityID: id, VersionedValue: next})
	r.mu.Unlock()

	r.emit(ctx, Mutation{
		Kind:     r.kind,
		EntityID: id,
		Action:   ActionUpdate,
		Actor:    actor,
		Version:  next.Version,
		At:       now,
	})
	return next.Version, nil
}

// AllCurrent returns the current version of every identity. It defends
// against invariant violations rather than trusting the valid-until flag
// alone: candidates are sorted by (identity, version descending) and only
// the highest version per identity is kept.
func (r *Registry[T]) AllCurrent(ctx context.Context) []Version[T] {
	r.mu.RLock()
	var current []Version[T]
	for _, v := range r.log {
		if v.IsCurrent() {
			current = append(current, v.clone())
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(current, func(i, j int) bool {
		if current[i].EntityID != current[j].EntityID {
			return current[i].EntityID < current[j].EntityID
		}
		return current[i].Version > current[j].Version
	})

	out := current[:0]
	var lastID string
	for _, v := range current {
		if v.EntityID == lastID {
			continue
		}
		out = append(out, v)
		lastID = v.EntityID
	}
	return out
}

// FindCurrent returns the first current entity, in registration order,
// whose payload satisfies the predicate. An unmatched predicate is a
// normal outcome surfaced as sentinel.ErrNotFound.
func (r *Registry[T]) FindCurrent(ctx context.Context, pred func(T) bool) (Version[T], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.log {
		if v.IsCurrent() && pred(v.Value) {
			return v.clone(), nil
		}
	}
	var zero Version[T]
	return zero, sentinel.ErrNotFound
}

// FilterCurrent returns every current entity whose payload satisfies the
// predicate, deduplicated per identity like AllCurrent.
func (r *Registry[T]) FilterCurrent(ctx context.Context, pred func(T) bool) []Version[T] {
	all := r.AllCurrent(ctx)
	out := all[:0]
	for _, v := range all {
		if pred(v.Value) {
			out = append(out, v)
		}
	}
	return out
}

// Count returns the number of distinct identities with a current version.
func (r *Registry[T]) Count(ctx context.Context) int {
	return len(r.AllCurrent(ctx))
}

func (r *Registry[T]) emit(ctx context.Context, m Mutation) {
	if r.hook != nil {
		r.hook(ctx, m)
	}
}

// Package registry implements the bitemporal entity registry: a generic,
// append-only log of immutable entity versions with point-in-time queries.
//
// An entity has a stable identity and a timeline of values. Each version
// carries four times: business time (when the real-world event occurred),
// system time (when the entity entered the system), and the valid-time
// interval [valid-from, valid-until) during which the version's value was
// considered true. A version with no valid-until is the current one.
package registry

import "time"

// TimeModel is the temporal metadata attached to every entity version.
type TimeModel struct {
	// BusinessTime is when the real-world event occurred, as it appeared
	// on the source document (e.g. a statement date). Inherited across
	// versions.
	BusinessTime string `json:"business_time,omitempty"`

	// SystemTime is when the entity was first recorded. Inherited across
	// versions; the append time of later versions is their ValidFrom.
	SystemTime time.Time `json:"system_time"`

	// ValidFrom is when this version's value became true.
	ValidFrom time.Time `json:"valid_from"`

	// ValidUntil is when this value ceased to be true; nil means still
	// current.
	ValidUntil *time.Time `json:"valid_until,omitempty"`
}

// NewTimeModel builds the temporal metadata for a freshly created entity.
func NewTimeModel(businessTime string, now time.Time) TimeModel {
	return TimeModel{
		BusinessTime: businessTime,
		SystemTime:   now,
		ValidFrom:    now,
	}
}

// IsCurrent reports whether this version is still current (no valid-until).
func (t TimeModel) IsCurrent() bool {
	return t.ValidUntil == nil
}

// WasValidAt reports whether this version was valid at the given instant.
// The valid-time interval is half-open: [ValidFrom, ValidUntil).
func (t TimeModel) WasValidAt(at time.Time) bool {
	if at.Before(t.ValidFrom) {
		return false
	}
	return t.ValidUntil == nil || t.ValidUntil.After(at)
}

// Closed returns a copy of the time model with the valid-time interval
// ended at the given instant.
func (t TimeModel) Closed(now time.Time) TimeModel {
	until := now
	t.ValidUntil = &until
	return t
}

// Value constrains registry payloads to types that can produce a deep copy.
// Registries hand out and retain independent copies so callers can never
// mutate stored state in place.
type Value[T any] interface {
	Clone() T
}

// VersionedValue wraps one immutable snapshot of an entity's payload with
// its version number and temporal metadata.
type VersionedValue[T Value[T]] struct {
	// Value is the immutable payload snapshot.
	Value T `json:"value"`

	// Version starts at 1 and increases by exactly 1 per update.
	Version int64 `json:"version"`

	Time TimeModel `json:"time"`

	// CreatedBy records the acting principal that produced this version.
	CreatedBy string `json:"created_by"`

	// ChangeReason optionally explains why this version exists.
	ChangeReason string `json:"change_reason,omitempty"`
}

// NewVersionedValue wraps a payload as version 1, valid from now.
func NewVersionedValue[T Value[T]](value T, businessTime, actor string, now time.Time) VersionedValue[T] {
	return VersionedValue[T]{
		Value:     value,
		Version:   1,
		Time:      NewTimeModel(businessTime, now),
		CreatedBy: actor,
	}
}

// NextVersion derives the successor snapshot: version+1, valid from now,
// still current. Business and system time carry over; the receiver is not
// mutated.
func (v VersionedValue[T]) NextVersion(newValue T, actor, reason string, now time.Time) VersionedValue[T] {
	return VersionedValue[T]{
		Value:   newValue,
		Version: v.Version + 1,
		Time: TimeModel{
			BusinessTime: v.Time.BusinessTime,
			SystemTime:   v.Time.SystemTime,
			ValidFrom:    now,
		},
		CreatedBy:    actor,
		ChangeReason: reason,
	}
}

// IsCurrent reports whether this version is still current.
func (v VersionedValue[T]) IsCurrent() bool {
	return v.Time.IsCurrent()
}

// WasValidAt reports whether this version was valid at the given instant.
func (v VersionedValue[T]) WasValidAt(at time.Time) bool {
	return v.Time.WasValidAt(at)
}

// clone returns a deep copy of the versioned value, including the payload.
func (v VersionedValue[T]) clone() VersionedValue[T] {
	out := v
	out.Value = v.Value.Clone()
	if v.Time.ValidUntil != nil {
		until := *v.Time.ValidUntil
		out.Time.ValidUntil = &until
	}
	return out
}

// Package audit records every registry mutation: who changed which
// entity, the action, and the resulting version number. The registries
// emit events through a hook; a worker drains them into a store off the
// request path.
package audit

import (
	"time"

	"bookkeeper/internal/registry"
)

// Event is one recorded registry mutation. Keep it transport-agnostic so
// stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
	EntityID  string    `json:"entity_id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Version   int64     `json:"version"`
}

// FromMutation converts a registry mutation into an audit event.
func FromMutation(m registry.Mutation) Event {
	return Event{
		Timestamp: m.At,
		Kind:      m.Kind,
		EntityID:  m.EntityID,
		Action:    string(m.Action),
		Actor:     m.Actor,
		Version:   m.Version,
	}
}

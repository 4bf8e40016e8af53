package audit

import "context"

// Store persists audit events. Append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByEntity(ctx context.Context, entityID string) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

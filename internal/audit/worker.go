package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from a channel and persists them. Keeps
// store writes off the registry mutation path.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run drains the inbox until the context is cancelled. A failed append is
// logged and dropped rather than retried.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "failed to append audit event",
					"error", err,
					"kind", event.Kind,
					"entity_id", event.EntityID,
				)
			}
		}
	}
}

package audit

import (
	"context"
	"log/slog"

	"bookkeeper/internal/registry"
)

// Publisher feeds registry mutations into the worker inbox.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

// NewPublisher creates a publisher with a buffered inbox. Inbox returns
// the channel to hand to the worker.
func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Inbox is the worker's consumption side of the event channel.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}

// Hook adapts the publisher to the registry mutation hook. The send never
// blocks: when the inbox is full the event is dropped with a warning so a
// slow audit store cannot stall registry writes.
func (p *Publisher) Hook() registry.MutationHook {
	return func(ctx context.Context, m registry.Mutation) {
		event := FromMutation(m)
		select {
		case p.inbox <- event:
		default:
			p.logger.WarnContext(ctx, "audit inbox full, dropping event",
				"kind", event.Kind,
				"entity_id", event.EntityID,
				"action", event.Action,
			)
		}
	}
}

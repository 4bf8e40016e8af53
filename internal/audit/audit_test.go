package audit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookkeeper/internal/registry"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInMemoryStoreListByEntity(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Event{Kind: "bank", EntityID: "a", Action: "register", Version: 1}))
	require.NoError(t, store.Append(ctx, Event{Kind: "bank", EntityID: "b", Action: "register", Version: 1}))
	require.NoError(t, store.Append(ctx, Event{Kind: "bank", EntityID: "a", Action: "update", Version: 2}))

	events, err := store.ListByEntity(ctx, "a")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "register", events[0].Action)
	assert.Equal(t, "update", events[1].Action)
}

func TestInMemoryStoreListRecentNewestFirst(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	for v := int64(1); v <= 5; v++ {
		require.NoError(t, store.Append(ctx, Event{EntityID: "a", Version: v}))
	}

	events, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(5), events[0].Version)
	assert.Equal(t, int64(4), events[1].Version)
}

func TestPublisherHookForwardsMutations(t *testing.T) {
	publisher := NewPublisher(4, testLogger())
	hook := publisher.Hook()

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	hook(context.Background(), registry.Mutation{
		Kind:     "merchant",
		EntityID: "m-1",
		Action:   registry.ActionUpdate,
		Actor:    "admin",
		Version:  3,
		At:       at,
	})

	select {
	case event := <-publisher.Inbox():
		assert.Equal(t, "merchant", event.Kind)
		assert.Equal(t, "m-1", event.EntityID)
		assert.Equal(t, "update", event.Action)
		assert.Equal(t, int64(3), event.Version)
		assert.Equal(t, at, event.Timestamp)
	default:
		t.Fatal("expected an event in the inbox")
	}
}

func TestPublisherHookDropsWhenInboxFull(t *testing.T) {
	publisher := NewPublisher(1, testLogger())
	hook := publisher.Hook()
	ctx := context.Background()

	hook(ctx, registry.Mutation{EntityID: "first"})
	// Inbox is full; this must not block.
	done := make(chan struct{})
	go func() {
		hook(ctx, registry.Mutation{EntityID: "second"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hook blocked on a full inbox")
	}

	event := <-publisher.Inbox()
	assert.Equal(t, "first", event.EntityID)
}

func TestWorkerDrainsInboxIntoStore(t *testing.T) {
	store := NewInMemoryStore()
	publisher := NewPublisher(8, testLogger())
	worker := NewWorker(store, publisher.Inbox(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	workerDone := make(chan error, 1)
	go func() { workerDone <- worker.Run(ctx) }()

	hook := publisher.Hook()
	for v := int64(1); v <= 3; v++ {
		hook(ctx, registry.Mutation{Kind: "bank", EntityID: "a", Action: registry.ActionUpdate, Version: v})
	}

	require.Eventually(t, func() bool {
		events, err := store.ListByEntity(context.Background(), "a")
		return err == nil && len(events) == 3
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-workerDone, context.Canceled)
}

//go:build integration

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookkeeper/pkg/testutil/containers"
)

const auditDDL = `
	CREATE TABLE IF NOT EXISTS audit_events (
	    id          UUID PRIMARY KEY,
	    occurred_at TIMESTAMPTZ NOT NULL,
	    kind        TEXT NOT NULL,
	    entity_id   TEXT NOT NULL,
	    action      TEXT NOT NULL,
	    actor       TEXT NOT NULL,
	    version     BIGINT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS audit_events_entity_idx ON audit_events (entity_id, occurred_at);
`

func TestPostgresStoreAppendAndListByEntity(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	pg.MustExec(t, auditDDL)
	store := NewPostgresStore(pg.DB)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for version := int64(1); version <= 3; version++ {
		require.NoError(t, store.Append(ctx, Event{
			Timestamp: base.Add(time.Duration(version) * time.Minute),
			Kind:      "bank",
			EntityID:  "bank-1",
			Action:    "update",
			Actor:     "importer",
			Version:   version,
		}))
	}
	require.NoError(t, store.Append(ctx, Event{
		Timestamp: base,
		Kind:      "merchant",
		EntityID:  "merchant-1",
		Action:    "register",
		Actor:     "seed",
		Version:   1,
	}))

	events, err := store.ListByEntity(ctx, "bank-1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, e := range events {
		assert.Equal(t, int64(i+1), e.Version)
		assert.Equal(t, "bank", e.Kind)
	}
}

func TestPostgresStoreListRecentNewestFirst(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	pg.MustExec(t, auditDDL)
	store := NewPostgresStore(pg.DB)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for version := int64(1); version <= 5; version++ {
		require.NoError(t, store.Append(ctx, Event{
			Timestamp: base.Add(time.Duration(version) * time.Minute),
			Kind:      "category",
			EntityID:  "category-1",
			Action:    "update",
			Actor:     "admin",
			Version:   version,
		}))
	}

	events, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(5), events[0].Version)
	assert.Equal(t, int64(4), events[1].Version)
}

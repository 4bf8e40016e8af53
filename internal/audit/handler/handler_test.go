package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookkeeper/internal/audit"
)

const testAdminToken = "test-admin-token"

func newTestRouter(t *testing.T) (http.Handler, *audit.InMemoryStore) {
	t.Helper()
	store := audit.NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(store, testAdminToken, logger, nil)

	r := chi.NewRouter()
	h.Register(r)
	return r, store
}

func get(router http.Handler, path string, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if admin {
		req.Header.Set("X-Admin-Token", testAdminToken)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuditRoutesRequireAdminToken(t *testing.T) {
	router, _ := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, get(router, "/api/v1/audit/recent", false).Code)
	assert.Equal(t, http.StatusUnauthorized, get(router, "/api/v1/audit/entity/abc", false).Code)
}

func TestAuditRecentAndByEntity(t *testing.T) {
	router, store := newTestRouter(t)
	ctx := context.Background()

	for v := int64(1); v <= 3; v++ {
		require.NoError(t, store.Append(ctx, audit.Event{Kind: "bank", EntityID: "bank-1", Action: "update", Version: v}))
	}
	require.NoError(t, store.Append(ctx, audit.Event{Kind: "merchant", EntityID: "merchant-1", Action: "register", Version: 1}))

	rec := get(router, "/api/v1/audit/recent?limit=2", true)
	require.Equal(t, http.StatusOK, rec.Code)
	var recent []audit.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recent))
	require.Len(t, recent, 2)
	assert.Equal(t, "merchant-1", recent[0].EntityID)

	rec = get(router, "/api/v1/audit/entity/bank-1", true)
	require.Equal(t, http.StatusOK, rec.Code)
	var events []audit.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 3)
	assert.Equal(t, int64(1), events[0].Version)
}

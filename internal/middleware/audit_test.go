package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/pagination"
	repo "github.com/AminHassanDouale/ilmacademy-sub004/internal/repository"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/repository/memory"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/services"
)

func newAuditMux(store *memory.AuditEventStore) http.Handler {
	svc := services.NewAuditService(store, nil, 25)
	r := chi.NewRouter()
	r.Use(AccessAudit(svc))
	r.Get("/subjects", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Post("/subjects", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusCreated) })
	r.Get("/broken", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) })
	return r
}

func accessEvents(t *testing.T, store *memory.AuditEventStore) []models.AuditEvent {
	t.Helper()
	rows, _, err := store.List(context.Background(), repo.AuditFilter{Verb: models.VerbAccess}, repo.DefaultAuditSort(), pagination.NewPageRequest(1, 25))
	require.NoError(t, err)
	return rows
}

func TestAccessAuditRecordsSuccessfulGet(t *testing.T) {
	store := memory.NewAuditEventStore()
	mux := newAuditMux(store)

	req := httptest.NewRequest(http.MethodGet, "/subjects", nil)
	req.RemoteAddr = "203.0.113.7:4431"
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	mux.ServeHTTP(httptest.NewRecorder(), req)

	rows := accessEvents(t, store)
	require.Len(t, rows, 1)
	assert.Equal(t, "Accessed /subjects", rows[0].Description)
	assert.Equal(t, "203.0.113.7", rows[0].Metadata["ip"])
	assert.Contains(t, rows[0].Metadata, "browser")
	assert.Nil(t, rows[0].ActorID)
}

func TestAccessAuditSkipsMutationsAndFailures(t *testing.T) {
	store := memory.NewAuditEventStore()
	mux := newAuditMux(store)

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/subjects", nil))
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Empty(t, accessEvents(t, store))
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1111"
	req.Header.Set("X-Forwarded-For", "198.51.100.9, 10.0.0.1")
	assert.Equal(t, "198.51.100.9", clientIP(req))
}

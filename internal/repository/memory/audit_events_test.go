package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/pagination"
	repo "github.com/AminHassanDouale/ilmacademy-sub004/internal/repository"
)

func seed(t *testing.T, s *AuditEventStore) {
	t.Helper()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, verb := range []string{models.VerbDelete, models.VerbAccess, models.VerbCreate} {
		_, err := s.Insert(context.Background(), models.AuditEvent{
			Verb:        verb,
			Description: "event " + verb,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func verbs(rows []models.AuditEvent) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Verb
	}
	return out
}

func TestListSortsByColumn(t *testing.T) {
	s := NewAuditEventStore()
	seed(t, s)
	ctx := context.Background()
	page := pagination.NewPageRequest(1, 25)

	rows, total, err := s.List(ctx, repo.AuditFilter{}, repo.DefaultAuditSort(), page)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	// default: newest first
	assert.Equal(t, []string{models.VerbCreate, models.VerbAccess, models.VerbDelete}, verbs(rows))

	rows, _, err = s.List(ctx, repo.AuditFilter{}, repo.AuditSort{Column: repo.SortVerb}, page)
	require.NoError(t, err)
	assert.Equal(t, []string{models.VerbAccess, models.VerbCreate, models.VerbDelete}, verbs(rows))

	rows, _, err = s.List(ctx, repo.AuditFilter{}, repo.AuditSort{Column: repo.SortVerb, Desc: true}, page)
	require.NoError(t, err)
	assert.Equal(t, []string{models.VerbDelete, models.VerbCreate, models.VerbAccess}, verbs(rows))
}

func TestListPaginatesStably(t *testing.T) {
	s := NewAuditEventStore()
	seed(t, s)
	ctx := context.Background()

	first, total, err := s.List(ctx, repo.AuditFilter{}, repo.DefaultAuditSort(), pagination.NewPageRequest(1, 2))
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, first, 2)

	second, _, err := s.List(ctx, repo.AuditFilter{}, repo.DefaultAuditSort(), pagination.NewPageRequest(2, 2))
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, models.VerbDelete, second[0].Verb)
}

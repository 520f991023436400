// Package memory holds in-memory store implementations for tests and dev
// wiring, mirroring the behavior of the postgres stores.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/pagination"
	repo "github.com/AminHassanDouale/ilmacademy-sub004/internal/repository"
	"github.com/google/uuid"
)

type actor struct{ name, email string }

// AuditEventStore is an in-memory repository.AuditEvents.
type AuditEventStore struct {
	mu     sync.RWMutex
	events []models.AuditEvent
	actors map[string]actor
}

func NewAuditEventStore() *AuditEventStore {
	return &AuditEventStore{actors: make(map[string]actor)}
}

// PutActor registers name/email for an actor id so free-text search can
// match them, standing in for the users table join.
func (s *AuditEventStore) PutActor(id, name, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actors[id] = actor{name: name, email: email}
}

func (s *AuditEventStore) Insert(_ context.Context, e models.AuditEvent) (models.AuditEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	s.events = append(s.events, e)
	return e, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (s *AuditEventStore) matches(e models.AuditEvent, f repo.AuditFilter) bool {
	if q := strings.TrimSpace(f.Search); q != "" {
		hit := containsFold(e.Description, q) || containsFold(e.Verb, q)
		if !hit && e.ActorID != nil {
			if a, ok := s.actors[*e.ActorID]; ok {
				hit = containsFold(a.name, q) || containsFold(a.email, q)
			}
		}
		if !hit {
			return false
		}
	}
	if f.ActorID != "" && (e.ActorID == nil || *e.ActorID != f.ActorID) {
		return false
	}
	if f.Verb != "" && e.Verb != f.Verb {
		return false
	}
	if f.Day != nil {
		y1, m1, d1 := e.CreatedAt.Date()
		y2, m2, d2 := f.Day.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
	}
	if f.SubjectType != "" && (e.SubjectType == nil || *e.SubjectType != f.SubjectType) {
		return false
	}
	return true
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (s *AuditEventStore) List(_ context.Context, f repo.AuditFilter, srt repo.AuditSort, p pagination.PageRequest) ([]models.AuditEvent, int64, error) {
	srt.Normalize()

	s.mu.RLock()
	var hits []models.AuditEvent
	for _, e := range s.events {
		if s.matches(e, f) {
			hits = append(hits, e)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		var less bool
		switch srt.Column {
		case repo.SortVerb:
			less = a.Verb < b.Verb
		case repo.SortActorID:
			less = deref(a.ActorID) < deref(b.ActorID)
		case repo.SortSubjectType:
			less = deref(a.SubjectType) < deref(b.SubjectType)
		case repo.SortDescription:
			less = a.Description < b.Description
		default:
			less = a.CreatedAt.Before(b.CreatedAt)
		}
		if srt.Desc {
			return !less && !equalByColumn(a, b, srt.Column)
		}
		return less
	})

	total := int64(len(hits))
	start := p.Offset()
	if start >= len(hits) {
		return nil, total, nil
	}
	end := start + p.Limit()
	if end > len(hits) {
		end = len(hits)
	}
	return hits[start:end], total, nil
}

func equalByColumn(a, b models.AuditEvent, col string) bool {
	switch col {
	case repo.SortVerb:
		return a.Verb == b.Verb
	case repo.SortActorID:
		return deref(a.ActorID) == deref(b.ActorID)
	case repo.SortSubjectType:
		return deref(a.SubjectType) == deref(b.SubjectType)
	case repo.SortDescription:
		return a.Description == b.Description
	default:
		return a.CreatedAt.Equal(b.CreatedAt)
	}
}

func (s *AuditEventStore) CountAll(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.events)), nil
}

func (s *AuditEventStore) CountOnDay(_ context.Context, day time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	y, m, d := day.Date()
	for _, e := range s.events {
		ey, em, ed := e.CreatedAt.Date()
		if ey == y && em == m && ed == d {
			n++
		}
	}
	return n, nil
}

func (s *AuditEventStore) CountDistinctActorsSince(_ context.Context, since time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, e := range s.events {
		if e.ActorID != nil && !e.CreatedAt.Before(since) {
			seen[*e.ActorID] = struct{}{}
		}
	}
	return int64(len(seen)), nil
}

func (s *AuditEventStore) CountErrorsSince(_ context.Context, since time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, e := range s.events {
		if e.CreatedAt.Before(since) {
			continue
		}
		if containsFold(e.Verb, "error") || containsFold(e.Description, "error") {
			n++
		}
	}
	return n, nil
}

func (s *AuditEventStore) CountByVerb(_ context.Context, verbs []string) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := make(map[string]struct{}, len(verbs))
	for _, v := range verbs {
		want[v] = struct{}{}
	}
	out := make(map[string]int64, len(verbs))
	for _, e := range s.events {
		if _, ok := want[e.Verb]; ok {
			out[e.Verb]++
		}
	}
	return out, nil
}

func (s *AuditEventStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.events[:0]
	var deleted int64
	for _, e := range s.events {
		if e.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	s.events = kept
	return deleted, nil
}

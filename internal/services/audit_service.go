package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/metrics"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/pagination"
	repo "github.com/AminHassanDouale/ilmacademy-sub004/internal/repository"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/worker"
	"golang.org/x/sync/errgroup"
)

var ErrValidation = errors.New("validation")

// statsVerbs are the named dashboard buckets; everything else lands in
// the "other" remainder.
var statsVerbs = []string{models.VerbCreate, models.VerbUpdate, models.VerbDelete, models.VerbLogin}

// AuditService is the audit recorder, query/report service and retention
// purge. Writes are best-effort: a failed insert is logged and counted but
// never aborts the caller's operation.
type AuditService struct {
	events   repo.AuditEvents
	pool     *worker.Pool
	pageSize int
	now      func() time.Time
}

func NewAuditService(events repo.AuditEvents, pool *worker.Pool, pageSize int) *AuditService {
	if pageSize <= 0 {
		pageSize = pagination.DefaultSize
	}
	return &AuditService{events: events, pool: pool, pageSize: pageSize, now: time.Now}
}

// RecordInput carries one audit event to be written. SubjectType and
// SubjectID must be set together or not at all.
type RecordInput struct {
	ActorID     *string
	Verb        string
	Description string
	SubjectType *string
	SubjectID   *string
	Metadata    map[string]any
}

func (in RecordInput) validate() error {
	if in.Verb == "" {
		return fmt.Errorf("%w: verb required", ErrValidation)
	}
	if in.Description == "" {
		return fmt.Errorf("%w: description required", ErrValidation)
	}
	if (in.SubjectType == nil) != (in.SubjectID == nil) {
		return fmt.Errorf("%w: subject type and id must be set together", ErrValidation)
	}
	return nil
}

// Record inserts one audit event. Invalid input is an error; a store
// failure is not — it is reported to the operational log and swallowed so
// audit logging can never break the business action that triggered it.
func (s *AuditService) Record(ctx context.Context, in RecordInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	e := models.AuditEvent{
		ActorID:     in.ActorID,
		Verb:        in.Verb,
		Description: in.Description,
		SubjectType: in.SubjectType,
		SubjectID:   in.SubjectID,
		Metadata:    in.Metadata,
		CreatedAt:   s.now().UTC(),
	}
	if _, err := s.events.Insert(ctx, e); err != nil {
		slog.Error("audit write failed", "verb", in.Verb, "err", err)
		metrics.AuditWriteFailures.Inc()
		return nil
	}
	metrics.AuditEventsRecorded.WithLabelValues(in.Verb).Inc()
	return nil
}

// RecordAccess queues a page-view event through the worker pool so reads
// never pay the insert latency. The event is dropped (and counted) when
// the queue is full; access telemetry is not worth stalling a request.
func (s *AuditService) RecordAccess(in RecordInput) {
	if s.pool == nil {
		_ = s.Record(context.Background(), in)
		return
	}
	if !s.pool.TrySubmit(func() { _ = s.Record(context.Background(), in) }) {
		metrics.AuditAccessDropped.Inc()
	}
}

// List returns one page of filtered, sorted audit events. Store failures
// propagate; the caller renders an error state.
func (s *AuditService) List(ctx context.Context, f repo.AuditFilter, srt repo.AuditSort, p pagination.PageRequest) (pagination.Result, error) {
	if p.Size <= 0 {
		p = pagination.NewPageRequest(p.Page, s.pageSize)
	}
	rows, total, err := s.events.List(ctx, f, srt, p)
	if err != nil {
		return pagination.Result{}, fmt.Errorf("list audit events: %w", err)
	}
	if rows == nil {
		rows = []models.AuditEvent{}
	}
	return pagination.NewResult(rows, total, p), nil
}

// StatsSnapshot is the dashboard counter set.
type StatsSnapshot struct {
	Total        int64 `json:"total"`
	Today        int64 `json:"today"`
	ActiveActors int64 `json:"active_actors_7d"`
	ErrorLogs    int64 `json:"error_logs_24h"`
	CreateCount  int64 `json:"create_count"`
	UpdateCount  int64 `json:"update_count"`
	DeleteCount  int64 `json:"delete_count"`
	LoginCount   int64 `json:"login_count"`
	OtherCount   int64 `json:"other_count"`
}

// Stats aggregates the dashboard counters as of the given time. It never
// fails: any store error degrades to an all-zero snapshot so dashboards
// stay renderable.
func (s *AuditService) Stats(ctx context.Context, asOf time.Time) StatsSnapshot {
	var snap StatsSnapshot
	var byVerb map[string]int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Total, err = s.events.CountAll(gctx)
		return
	})
	g.Go(func() (err error) {
		snap.Today, err = s.events.CountOnDay(gctx, asOf)
		return
	})
	g.Go(func() (err error) {
		snap.ActiveActors, err = s.events.CountDistinctActorsSince(gctx, asOf.AddDate(0, 0, -7))
		return
	})
	g.Go(func() (err error) {
		snap.ErrorLogs, err = s.events.CountErrorsSince(gctx, asOf.Add(-24*time.Hour))
		return
	})
	g.Go(func() (err error) {
		byVerb, err = s.events.CountByVerb(gctx, statsVerbs)
		return
	})
	if err := g.Wait(); err != nil {
		slog.Error("audit stats degraded to zero snapshot", "err", err)
		return StatsSnapshot{}
	}

	snap.CreateCount = byVerb[models.VerbCreate]
	snap.UpdateCount = byVerb[models.VerbUpdate]
	snap.DeleteCount = byVerb[models.VerbDelete]
	snap.LoginCount = byVerb[models.VerbLogin]
	snap.OtherCount = snap.Total - (snap.CreateCount + snap.UpdateCount + snap.DeleteCount + snap.LoginCount)
	if snap.OtherCount < 0 {
		snap.OtherCount = 0
	}
	return snap
}

// PurgeOlderThan deletes every event created strictly before now-days in
// one atomic operation, then records a single bulk_delete event describing
// the run. The new event postdates the cutoff so it can never be caught by
// its own predicate.
func (s *AuditService) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("%w: days must be > 0", ErrValidation)
	}
	cutoff := s.now().UTC().AddDate(0, 0, -days)
	deleted, err := s.events.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge audit events: %w", err)
	}
	metrics.AuditEventsPurged.Add(float64(deleted))

	_ = s.Record(ctx, RecordInput{
		Verb:        models.VerbBulkDelete,
		Description: fmt.Sprintf("Purged %d audit events older than %d days", deleted, days),
		Metadata: map[string]any{
			"deleted_count":  deleted,
			"retention_days": days,
			"cutoff":         cutoff.Format(time.RFC3339),
		},
	})
	return deleted, nil
}

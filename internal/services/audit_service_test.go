package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/pagination"
	repo "github.com/AminHassanDouale/ilmacademy-sub004/internal/repository"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/repository/memory"
)

type AuditServiceSuite struct {
	suite.Suite
	store *memory.AuditEventStore
	svc   *AuditService
	ctx   context.Context
}

func (s *AuditServiceSuite) SetupTest() {
	s.store = memory.NewAuditEventStore()
	s.svc = NewAuditService(s.store, nil, 25)
	s.ctx = context.Background()
}

func TestAuditServiceSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceSuite))
}

// recordAt writes an event with a fixed clock.
func (s *AuditServiceSuite) recordAt(at time.Time, in RecordInput) {
	s.svc.now = func() time.Time { return at }
	s.Require().NoError(s.svc.Record(s.ctx, in))
	s.svc.now = time.Now
}

func strp(v string) *string { return &v }

func (s *AuditServiceSuite) TestRecordThenListByVerb() {
	start := time.Now().UTC()
	s.Require().NoError(s.svc.Record(s.ctx, RecordInput{Verb: models.VerbExport, Description: "Exported enrollment report"}))
	end := time.Now().UTC()

	res, err := s.svc.List(s.ctx, repo.AuditFilter{Verb: models.VerbExport}, repo.DefaultAuditSort(), pagination.NewPageRequest(1, 25))
	s.Require().NoError(err)

	rows := res.Data.([]models.AuditEvent)
	s.Require().Len(rows, 1)
	s.Equal(models.VerbExport, rows[0].Verb)
	s.Equal("Exported enrollment report", rows[0].Description)
	s.False(rows[0].CreatedAt.Before(start))
	s.False(rows[0].CreatedAt.After(end))
}

func (s *AuditServiceSuite) TestRecordValidation() {
	s.Run("verb required", func() {
		err := s.svc.Record(s.ctx, RecordInput{Description: "no verb"})
		s.Require().ErrorIs(err, ErrValidation)
	})
	s.Run("description required", func() {
		err := s.svc.Record(s.ctx, RecordInput{Verb: models.VerbCreate})
		s.Require().ErrorIs(err, ErrValidation)
	})
	s.Run("subject pair must be set together", func() {
		err := s.svc.Record(s.ctx, RecordInput{Verb: models.VerbCreate, Description: "x", SubjectType: strp("subject")})
		s.Require().ErrorIs(err, ErrValidation)
	})
}

func (s *AuditServiceSuite) TestRecordSwallowsStoreFailure() {
	svc := NewAuditService(&failingAuditStore{}, nil, 25)
	s.NoError(svc.Record(s.ctx, RecordInput{Verb: models.VerbCreate, Description: "kept from the caller"}))
}

func (s *AuditServiceSuite) TestListFiltersAreConjunctive() {
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	actor := "a1"
	s.store.PutActor(actor, "Amina Yusuf", "amina@example.org")

	s.recordAt(day, RecordInput{ActorID: &actor, Verb: models.VerbUpdate, Description: "Updated payment plan Basic", SubjectType: strp("payment_plan"), SubjectID: strp("p1")})
	// same day, wrong verb
	s.recordAt(day.Add(time.Hour), RecordInput{ActorID: &actor, Verb: models.VerbDelete, Description: "Deleted payment plan Basic", SubjectType: strp("payment_plan"), SubjectID: strp("p1")})
	// right verb, different actor
	s.recordAt(day, RecordInput{ActorID: strp("a2"), Verb: models.VerbUpdate, Description: "Updated payment plan Gold", SubjectType: strp("payment_plan"), SubjectID: strp("p2")})
	// right verb and actor, day before
	s.recordAt(day.AddDate(0, 0, -1), RecordInput{ActorID: &actor, Verb: models.VerbUpdate, Description: "Updated payment plan Silver", SubjectType: strp("payment_plan"), SubjectID: strp("p3")})

	f := repo.AuditFilter{
		Search:      "payment plan",
		ActorID:     actor,
		Verb:        models.VerbUpdate,
		Day:         &day,
		SubjectType: "payment_plan",
	}
	res, err := s.svc.List(s.ctx, f, repo.DefaultAuditSort(), pagination.NewPageRequest(1, 25))
	s.Require().NoError(err)

	rows := res.Data.([]models.AuditEvent)
	s.Require().Len(rows, 1)
	s.Equal("Updated payment plan Basic", rows[0].Description)
}

func (s *AuditServiceSuite) TestSearchMatchesActorNameAndEmail() {
	actor := "a1"
	s.store.PutActor(actor, "Khadija Omar", "khadija@school.test")
	s.Require().NoError(s.svc.Record(s.ctx, RecordInput{ActorID: &actor, Verb: models.VerbAccess, Description: "Accessed /subjects"}))
	s.Require().NoError(s.svc.Record(s.ctx, RecordInput{Verb: models.VerbAccess, Description: "Accessed /subjects"}))

	for _, q := range []string{"khadija", "SCHOOL.TEST"} {
		res, err := s.svc.List(s.ctx, repo.AuditFilter{Search: q}, repo.DefaultAuditSort(), pagination.NewPageRequest(1, 25))
		s.Require().NoError(err)
		s.Len(res.Data.([]models.AuditEvent), 1, "query %q", q)
	}
}

func (s *AuditServiceSuite) TestListPageBeyondEnd() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.svc.Record(s.ctx, RecordInput{Verb: models.VerbAccess, Description: "Accessed /dashboard"}))
	}
	res, err := s.svc.List(s.ctx, repo.AuditFilter{}, repo.DefaultAuditSort(), pagination.NewPageRequest(5, 25))
	s.Require().NoError(err)
	s.Empty(res.Data.([]models.AuditEvent))
	s.EqualValues(3, res.Total)
}

func (s *AuditServiceSuite) TestStatsEmptyLog() {
	snap := s.svc.Stats(s.ctx, time.Now().UTC())
	s.Equal(StatsSnapshot{}, snap)
}

func (s *AuditServiceSuite) TestStatsVerbBuckets() {
	now := time.Now().UTC()
	s.recordAt(now, RecordInput{Verb: models.VerbCreate, Description: "Created subject Math"})
	s.recordAt(now, RecordInput{Verb: models.VerbCreate, Description: "Created subject Tajweed"})
	s.recordAt(now, RecordInput{Verb: models.VerbUpdate, Description: "Updated subject Math"})

	snap := s.svc.Stats(s.ctx, now)
	s.EqualValues(3, snap.Total)
	s.EqualValues(2, snap.CreateCount)
	s.EqualValues(1, snap.UpdateCount)
	s.EqualValues(0, snap.DeleteCount)
	s.EqualValues(0, snap.OtherCount)
}

func (s *AuditServiceSuite) TestStatsOtherBucketFloorsAtZero() {
	now := time.Now().UTC()
	s.recordAt(now, RecordInput{Verb: models.VerbAccess, Description: "Accessed /dashboard"})
	snap := s.svc.Stats(s.ctx, now)
	s.EqualValues(1, snap.Total)
	s.EqualValues(1, snap.OtherCount)
}

func (s *AuditServiceSuite) TestStatsErrorWindow() {
	now := time.Now().UTC()
	s.recordAt(now.Add(-2*time.Hour), RecordInput{Verb: models.VerbAccess, Description: "Disk error during sync"})
	snap := s.svc.Stats(s.ctx, now)
	s.EqualValues(1, snap.ErrorLogs)

	// same text but outside the 24h window
	s.recordAt(now.Add(-30*time.Hour), RecordInput{Verb: models.VerbAccess, Description: "Disk error during sync"})
	snap = s.svc.Stats(s.ctx, now)
	s.EqualValues(1, snap.ErrorLogs)
}

func (s *AuditServiceSuite) TestStatsActiveActorsWindow() {
	now := time.Now().UTC()
	s.recordAt(now.Add(-time.Hour), RecordInput{ActorID: strp("a1"), Verb: models.VerbLogin, Description: "a1 logged in"})
	s.recordAt(now.Add(-time.Hour), RecordInput{ActorID: strp("a1"), Verb: models.VerbAccess, Description: "Accessed /subjects"})
	s.recordAt(now.AddDate(0, 0, -3), RecordInput{ActorID: strp("a2"), Verb: models.VerbLogin, Description: "a2 logged in"})
	s.recordAt(now.AddDate(0, 0, -10), RecordInput{ActorID: strp("a3"), Verb: models.VerbLogin, Description: "a3 logged in"})

	snap := s.svc.Stats(s.ctx, now)
	s.EqualValues(2, snap.ActiveActors)
}

func (s *AuditServiceSuite) TestStatsDegradesToZeroOnStoreFailure() {
	svc := NewAuditService(&failingAuditStore{}, nil, 25)
	s.Equal(StatsSnapshot{}, svc.Stats(s.ctx, time.Now().UTC()))
}

func (s *AuditServiceSuite) TestPurgeIdempotent() {
	now := time.Now().UTC()
	for i := 0; i < 4; i++ {
		s.recordAt(now.AddDate(0, 0, -100), RecordInput{Verb: models.VerbAccess, Description: "Accessed /old"})
	}
	s.recordAt(now.Add(-time.Hour), RecordInput{Verb: models.VerbAccess, Description: "Accessed /fresh"})

	deleted, err := s.svc.PurgeOlderThan(s.ctx, 90)
	s.Require().NoError(err)
	s.EqualValues(4, deleted)

	again, err := s.svc.PurgeOlderThan(s.ctx, 90)
	s.Require().NoError(err)
	s.EqualValues(0, again)
}

func (s *AuditServiceSuite) TestPurgeLeavesNoOldRowsAndLogsItself() {
	now := time.Now().UTC()
	s.recordAt(now.AddDate(0, 0, -100), RecordInput{Verb: models.VerbAccess, Description: "Accessed /old"})

	deleted, err := s.svc.PurgeOlderThan(s.ctx, 90)
	s.Require().NoError(err)
	s.EqualValues(1, deleted)

	res, err := s.svc.List(s.ctx, repo.AuditFilter{}, repo.DefaultAuditSort(), pagination.NewPageRequest(1, 25))
	s.Require().NoError(err)
	rows := res.Data.([]models.AuditEvent)
	s.Require().Len(rows, 1)

	cutoff := now.AddDate(0, 0, -90)
	s.Equal(models.VerbBulkDelete, rows[0].Verb)
	s.False(rows[0].CreatedAt.Before(cutoff))
	s.EqualValues(1, rows[0].Metadata["deleted_count"])
	s.Equal(90, rows[0].Metadata["retention_days"])
}

func (s *AuditServiceSuite) TestPurgeValidationAndFailure() {
	_, err := s.svc.PurgeOlderThan(s.ctx, 0)
	s.Require().ErrorIs(err, ErrValidation)

	svc := NewAuditService(&failingAuditStore{}, nil, 25)
	_, err = svc.PurgeOlderThan(s.ctx, 90)
	s.Require().Error(err)
}

// failingAuditStore simulates an unreachable store.
type failingAuditStore struct{}

var errStoreDown = errors.New("store down")

func (f *failingAuditStore) Insert(context.Context, models.AuditEvent) (models.AuditEvent, error) {
	return models.AuditEvent{}, errStoreDown
}
func (f *failingAuditStore) List(context.Context, repo.AuditFilter, repo.AuditSort, pagination.PageRequest) ([]models.AuditEvent, int64, error) {
	return nil, 0, errStoreDown
}
func (f *failingAuditStore) CountAll(context.Context) (int64, error) { return 0, errStoreDown }
func (f *failingAuditStore) CountOnDay(context.Context, time.Time) (int64, error) {
	return 0, errStoreDown
}
func (f *failingAuditStore) CountDistinctActorsSince(context.Context, time.Time) (int64, error) {
	return 0, errStoreDown
}
func (f *failingAuditStore) CountErrorsSince(context.Context, time.Time) (int64, error) {
	return 0, errStoreDown
}
func (f *failingAuditStore) CountByVerb(context.Context, []string) (map[string]int64, error) {
	return nil, errStoreDown
}
func (f *failingAuditStore) DeleteOlderThan(context.Context, time.Time) (int64, error) {
	return 0, errStoreDown
}

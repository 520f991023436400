package services

import (
	"context"
	"fmt"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/pagination"
	repo "github.com/AminHassanDouale/ilmacademy-sub004/internal/repository"
)

type EnrollmentService struct {
	enrollments repo.Enrollments
	users       repo.Users
	subjects    repo.Subjects
	plans       repo.PaymentPlans
	audit       *AuditService
}

func NewEnrollmentService(e repo.Enrollments, u repo.Users, s repo.Subjects, p repo.PaymentPlans, audit *AuditService) *EnrollmentService {
	return &EnrollmentService{enrollments: e, users: u, subjects: s, plans: p, audit: audit}
}

func (s *EnrollmentService) Create(ctx context.Context, actorID *string, in models.Enrollment) (models.Enrollment, error) {
	exists, err := s.users.Exists(ctx, in.StudentID)
	if err != nil {
		return models.Enrollment{}, err
	}
	if !exists {
		return models.Enrollment{}, fmt.Errorf("%w: unknown student", ErrValidation)
	}
	if _, err := s.subjects.GetByID(ctx, in.SubjectID); err != nil {
		return models.Enrollment{}, fmt.Errorf("%w: unknown subject", ErrValidation)
	}
	if in.PaymentPlanID != nil {
		if _, err := s.plans.GetByID(ctx, *in.PaymentPlanID); err != nil {
			return models.Enrollment{}, fmt.Errorf("%w: unknown payment plan", ErrValidation)
		}
	}
	if in.Status == "" {
		in.Status = models.EnrollPending
	}
	created, err := s.enrollments.Create(ctx, in)
	if err != nil {
		return models.Enrollment{}, err
	}
	_ = s.audit.Record(ctx, RecordInput{
		ActorID:     actorID,
		Verb:        models.VerbCreate,
		Description: fmt.Sprintf("Enrolled student %s in subject %s", created.StudentID, created.SubjectID),
		SubjectType: ptr("enrollment"),
		SubjectID:   &created.ID,
		Metadata:    map[string]any{"status": string(created.Status)},
	})
	return created, nil
}

func (s *EnrollmentService) GetByID(ctx context.Context, id string) (models.Enrollment, error) {
	return s.enrollments.GetByID(ctx, id)
}

func (s *EnrollmentService) List(ctx context.Context, f repo.EnrollmentFilter, p pagination.PageRequest) (pagination.Result, error) {
	rows, total, err := s.enrollments.List(ctx, f, p)
	if err != nil {
		return pagination.Result{}, fmt.Errorf("list enrollments: %w", err)
	}
	if rows == nil {
		rows = []models.Enrollment{}
	}
	return pagination.NewResult(rows, total, p), nil
}

func (s *EnrollmentService) UpdateStatus(ctx context.Context, actorID *string, id string, to models.EnrollmentStatus) (models.Enrollment, error) {
	e, err := s.enrollments.GetByID(ctx, id)
	if err != nil {
		return models.Enrollment{}, err
	}
	if !e.CanTransition(to) {
		return models.Enrollment{}, fmt.Errorf("%w: cannot move enrollment from %s to %s", ErrValidation, e.Status, to)
	}
	if err := s.enrollments.UpdateStatus(ctx, id, to); err != nil {
		return models.Enrollment{}, err
	}
	_ = s.audit.Record(ctx, RecordInput{
		ActorID:     actorID,
		Verb:        models.VerbUpdate,
		Description: fmt.Sprintf("Enrollment %s moved to %s", id, to),
		SubjectType: ptr("enrollment"),
		SubjectID:   &id,
		Metadata:    changeSet(map[string]any{"status": string(e.Status)}, map[string]any{"status": string(to)}),
	})
	return s.enrollments.GetByID(ctx, id)
}

package services

import (
	"context"
	"fmt"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	repo "github.com/AminHassanDouale/ilmacademy-sub004/internal/repository"
)

type SubjectService struct {
	subjects repo.Subjects
	audit    *AuditService
}

func NewSubjectService(subjects repo.Subjects, audit *AuditService) *SubjectService {
	return &SubjectService{subjects: subjects, audit: audit}
}

func (s *SubjectService) Create(ctx context.Context, actorID *string, in models.Subject) (models.Subject, error) {
	if err := in.Validate(); err != nil {
		return models.Subject{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	created, err := s.subjects.Create(ctx, in)
	if err != nil {
		return models.Subject{}, err
	}
	_ = s.audit.Record(ctx, RecordInput{
		ActorID:     actorID,
		Verb:        models.VerbCreate,
		Description: fmt.Sprintf("Created subject %s (%s)", created.Name, created.Code),
		SubjectType: ptr("subject"),
		SubjectID:   &created.ID,
	})
	return created, nil
}

func (s *SubjectService) GetByID(ctx context.Context, id string) (models.Subject, error) {
	return s.subjects.GetByID(ctx, id)
}

func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	return s.subjects.List(ctx)
}

func (s *SubjectService) Update(ctx context.Context, actorID *string, in models.Subject) (models.Subject, error) {
	if err := in.Validate(); err != nil {
		return models.Subject{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	old, err := s.subjects.GetByID(ctx, in.ID)
	if err != nil {
		return models.Subject{}, err
	}
	if err := s.subjects.Update(ctx, in); err != nil {
		return models.Subject{}, err
	}
	_ = s.audit.Record(ctx, RecordInput{
		ActorID:     actorID,
		Verb:        models.VerbUpdate,
		Description: fmt.Sprintf("Updated subject %s", in.Name),
		SubjectType: ptr("subject"),
		SubjectID:   &in.ID,
		Metadata: changeSet(
			map[string]any{"name": old.Name, "code": old.Code, "level": old.Level, "active": old.Active},
			map[string]any{"name": in.Name, "code": in.Code, "level": in.Level, "active": in.Active},
		),
	})
	return s.subjects.GetByID(ctx, in.ID)
}

func (s *SubjectService) Delete(ctx context.Context, actorID *string, id string) error {
	old, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.subjects.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.audit.Record(ctx, RecordInput{
		ActorID:     actorID,
		Verb:        models.VerbDelete,
		Description: fmt.Sprintf("Deleted subject %s (%s)", old.Name, old.Code),
		SubjectType: ptr("subject"),
		SubjectID:   &id,
	})
	return nil
}

package services

import (
	"context"
	"fmt"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	repo "github.com/AminHassanDouale/ilmacademy-sub004/internal/repository"
)

type PaymentPlanService struct {
	plans repo.PaymentPlans
	audit *AuditService
}

func NewPaymentPlanService(plans repo.PaymentPlans, audit *AuditService) *PaymentPlanService {
	return &PaymentPlanService{plans: plans, audit: audit}
}

func (s *PaymentPlanService) Create(ctx context.Context, actorID *string, in models.PaymentPlan) (models.PaymentPlan, error) {
	if err := in.Validate(); err != nil {
		return models.PaymentPlan{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	created, err := s.plans.Create(ctx, in)
	if err != nil {
		return models.PaymentPlan{}, err
	}
	_ = s.audit.Record(ctx, RecordInput{
		ActorID:     actorID,
		Verb:        models.VerbCreate,
		Description: fmt.Sprintf("Created payment plan %s (%s)", created.Name, created.Type),
		SubjectType: ptr("payment_plan"),
		SubjectID:   &created.ID,
	})
	return created, nil
}

func (s *PaymentPlanService) GetByID(ctx context.Context, id string) (models.PaymentPlan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *PaymentPlanService) List(ctx context.Context) ([]models.PaymentPlan, error) {
	return s.plans.List(ctx)
}

func (s *PaymentPlanService) Update(ctx context.Context, actorID *string, in models.PaymentPlan) (models.PaymentPlan, error) {
	if err := in.Validate(); err != nil {
		return models.PaymentPlan{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	old, err := s.plans.GetByID(ctx, in.ID)
	if err != nil {
		return models.PaymentPlan{}, err
	}
	if err := s.plans.Update(ctx, in); err != nil {
		return models.PaymentPlan{}, err
	}
	_ = s.audit.Record(ctx, RecordInput{
		ActorID:     actorID,
		Verb:        models.VerbUpdate,
		Description: fmt.Sprintf("Updated payment plan %s", in.Name),
		SubjectType: ptr("payment_plan"),
		SubjectID:   &in.ID,
		Metadata: changeSet(
			map[string]any{"name": old.Name, "type": string(old.Type), "amount": old.Amount, "currency": old.Currency, "active": old.Active},
			map[string]any{"name": in.Name, "type": string(in.Type), "amount": in.Amount, "currency": in.Currency, "active": in.Active},
		),
	})
	return s.plans.GetByID(ctx, in.ID)
}

func (s *PaymentPlanService) Delete(ctx context.Context, actorID *string, id string) error {
	old, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.plans.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.audit.Record(ctx, RecordInput{
		ActorID:     actorID,
		Verb:        models.VerbDelete,
		Description: fmt.Sprintf("Deleted payment plan %s", old.Name),
		SubjectType: ptr("payment_plan"),
		SubjectID:   &id,
	})
	return nil
}

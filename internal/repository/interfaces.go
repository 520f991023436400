package repository

import (
	"context"
	"errors"
	"time"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/pagination"
)

// ErrNotFound is returned by all stores when a row does not exist.
var ErrNotFound = errors.New("not found")

type Users interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u models.User) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type Subjects interface {
	Create(ctx context.Context, s models.Subject) (models.Subject, error)
	GetByID(ctx context.Context, id string) (models.Subject, error)
	List(ctx context.Context) ([]models.Subject, error)
	Update(ctx context.Context, s models.Subject) error
	Delete(ctx context.Context, id string) error
}

type PaymentPlans interface {
	Create(ctx context.Context, p models.PaymentPlan) (models.PaymentPlan, error)
	GetByID(ctx context.Context, id string) (models.PaymentPlan, error)
	List(ctx context.Context) ([]models.PaymentPlan, error)
	Update(ctx context.Context, p models.PaymentPlan) error
	Delete(ctx context.Context, id string) error
}

type Enrollments interface {
	Create(ctx context.Context, e models.Enrollment) (models.Enrollment, error)
	GetByID(ctx context.Context, id string) (models.Enrollment, error)
	List(ctx context.Context, f EnrollmentFilter, p pagination.PageRequest) ([]models.Enrollment, int64, error)
	UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus) error
}

// AuditEvents is the append-only audit store. Rows are inserted one at a
// time and removed only by DeleteOlderThan; there is no update path.
type AuditEvents interface {
	Insert(ctx context.Context, e models.AuditEvent) (models.AuditEvent, error)
	List(ctx context.Context, f AuditFilter, s AuditSort, p pagination.PageRequest) ([]models.AuditEvent, int64, error)

	CountAll(ctx context.Context) (int64, error)
	CountOnDay(ctx context.Context, day time.Time) (int64, error)
	CountDistinctActorsSince(ctx context.Context, since time.Time) (int64, error)
	// CountErrorsSince counts rows whose verb or description contains
	// "error", case-insensitively.
	CountErrorsSince(ctx context.Context, since time.Time) (int64, error)
	CountByVerb(ctx context.Context, verbs []string) (map[string]int64, error)

	// DeleteOlderThan removes every row with created_at strictly before
	// cutoff as one atomic operation and returns the number removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

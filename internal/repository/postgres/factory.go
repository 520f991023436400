package postgres

import (
	repo "github.com/AminHassanDouale/ilmacademy-sub004/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users        repo.Users
	Subjects     repo.Subjects
	PaymentPlans repo.PaymentPlans
	Enrollments  repo.Enrollments
	AuditEvents  repo.AuditEvents
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:        &usersRepo{pool},
		Subjects:     &subjectsRepo{pool},
		PaymentPlans: &paymentPlansRepo{pool},
		Enrollments:  &enrollmentsRepo{pool},
		AuditEvents:  &auditEventsRepo{pool},
	}
}

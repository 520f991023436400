package postgres

import (
	"context"
	"errors"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	repo "github.com/AminHassanDouale/ilmacademy-sub004/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type paymentPlansRepo struct{ pool *pgxpool.Pool }

const planColumns = `id, name, type, amount, currency, active, created_at, updated_at`

func (r *paymentPlansRepo) Create(ctx context.Context, p models.PaymentPlan) (models.PaymentPlan, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO payment_plans(id, name, type, amount, currency, active) VALUES($1,$2,$3,$4,$5,$6)
		 RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Type, p.Amount, p.Currency, p.Active,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *paymentPlansRepo) GetByID(ctx context.Context, id string) (models.PaymentPlan, error) {
	var p models.PaymentPlan
	err := r.pool.QueryRow(ctx,
		`SELECT `+planColumns+` FROM payment_plans WHERE id=$1`, id,
	).Scan(&p.ID, &p.Name, &p.Type, &p.Amount, &p.Currency, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.PaymentPlan{}, repo.ErrNotFound
	}
	return p, err
}

func (r *paymentPlansRepo) List(ctx context.Context) ([]models.PaymentPlan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+planColumns+` FROM payment_plans ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PaymentPlan
	for rows.Next() {
		var p models.PaymentPlan
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Amount, &p.Currency, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentPlansRepo) Update(ctx context.Context, p models.PaymentPlan) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE payment_plans SET name=$2, type=$3, amount=$4, currency=$5, active=$6, updated_at=now() WHERE id=$1`,
		p.ID, p.Name, p.Type, p.Amount, p.Currency, p.Active,
	)
	return err
}

func (r *paymentPlansRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM payment_plans WHERE id=$1`, id)
	return err
}

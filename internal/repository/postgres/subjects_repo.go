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

type subjectsRepo struct{ pool *pgxpool.Pool }

const subjectColumns = `id, name, code, level, active, created_at, updated_at`

func (r *subjectsRepo) Create(ctx context.Context, s models.Subject) (models.Subject, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO subjects(id, name, code, level, active) VALUES($1,$2,$3,$4,$5)
		 RETURNING created_at, updated_at`,
		s.ID, s.Name, s.Code, s.Level, s.Active,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *subjectsRepo) GetByID(ctx context.Context, id string) (models.Subject, error) {
	var s models.Subject
	err := r.pool.QueryRow(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE id=$1`, id,
	).Scan(&s.ID, &s.Name, &s.Code, &s.Level, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Subject{}, repo.ErrNotFound
	}
	return s, err
}

func (r *subjectsRepo) List(ctx context.Context) ([]models.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+subjectColumns+` FROM subjects ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Subject
	for rows.Next() {
		var s models.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.Level, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *subjectsRepo) Update(ctx context.Context, s models.Subject) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE subjects SET name=$2, code=$3, level=$4, active=$5, updated_at=now() WHERE id=$1`,
		s.ID, s.Name, s.Code, s.Level, s.Active,
	)
	return err
}

func (r *subjectsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE id=$1`, id)
	return err
}

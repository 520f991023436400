package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/pagination"
	repo "github.com/AminHassanDouale/ilmacademy-sub004/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type enrollmentsRepo struct{ pool *pgxpool.Pool }

const enrollmentColumns = `id, student_id, subject_id, payment_plan_id, status, created_at, updated_at`

func (r *enrollmentsRepo) Create(ctx context.Context, e models.Enrollment) (models.Enrollment, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO enrollments(id, student_id, subject_id, payment_plan_id, status) VALUES($1,$2,$3,$4,$5)
		 RETURNING created_at, updated_at`,
		e.ID, e.StudentID, e.SubjectID, e.PaymentPlanID, e.Status,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *enrollmentsRepo) GetByID(ctx context.Context, id string) (models.Enrollment, error) {
	var e models.Enrollment
	err := r.pool.QueryRow(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE id=$1`, id,
	).Scan(&e.ID, &e.StudentID, &e.SubjectID, &e.PaymentPlanID, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Enrollment{}, repo.ErrNotFound
	}
	return e, err
}

func (r *enrollmentsRepo) List(ctx context.Context, f repo.EnrollmentFilter, p pagination.PageRequest) ([]models.Enrollment, int64, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.StudentID != "" {
		conds = append(conds, "student_id = "+arg(f.StudentID))
	}
	if f.SubjectID != "" {
		conds = append(conds, "subject_id = "+arg(f.SubjectID))
	}
	if f.Status != "" {
		conds = append(conds, "status = "+arg(f.Status))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM enrollments`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`SELECT %s FROM enrollments%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		enrollmentColumns, where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, q, append(args, p.Limit(), p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.SubjectID, &e.PaymentPlanID, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *enrollmentsRepo) UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE enrollments SET status=$2, updated_at=now() WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/pagination"
	repo "github.com/AminHassanDouale/ilmacademy-sub004/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type auditEventsRepo struct{ pool *pgxpool.Pool }

const auditColumns = `e.id, e.actor_id, e.verb, e.description, e.subject_type, e.subject_id, e.metadata, e.created_at`

func (r *auditEventsRepo) Insert(ctx context.Context, e models.AuditEvent) (models.AuditEvent, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO audit_events(id, actor_id, verb, description, subject_type, subject_id, metadata, created_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING created_at`,
		e.ID, e.ActorID, e.Verb, e.Description, e.SubjectType, e.SubjectID, e.Metadata, e.CreatedAt,
	).Scan(&e.CreatedAt)
	return e, err
}

// whereClause builds the conjunctive filter. The actor join is needed so
// free-text search can match the actor's name or email.
func whereClause(f repo.AuditFilter) (string, []any) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg("%" + s + "%")
		conds = append(conds, fmt.Sprintf(
			"(e.description ILIKE %[1]s OR e.verb ILIKE %[1]s OR u.name ILIKE %[1]s OR u.email ILIKE %[1]s)", p))
	}
	if f.ActorID != "" {
		conds = append(conds, "e.actor_id = "+arg(f.ActorID))
	}
	if f.Verb != "" {
		conds = append(conds, "e.verb = "+arg(f.Verb))
	}
	if f.Day != nil {
		conds = append(conds, "e.created_at::date = "+arg(f.Day.Format("2006-01-02"))+"::date")
	}
	if f.SubjectType != "" {
		conds = append(conds, "e.subject_type = "+arg(f.SubjectType))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *auditEventsRepo) List(ctx context.Context, f repo.AuditFilter, s repo.AuditSort, p pagination.PageRequest) ([]models.AuditEvent, int64, error) {
	s.Normalize()
	where, args := whereClause(f)

	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM audit_events e LEFT JOIN users u ON u.id = e.actor_id`+where,
		args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	// s.Column is whitelisted by Normalize, never caller input.
	q := fmt.Sprintf(
		`SELECT %s FROM audit_events e LEFT JOIN users u ON u.id = e.actor_id%s ORDER BY e.%s %s LIMIT $%d OFFSET $%d`,
		auditColumns, where, s.Column, s.Direction(), len(args)+1, len(args)+2,
	)
	rows, err := r.pool.Query(ctx, q, append(args, p.Limit(), p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.AuditEvent
	for rows.Next() {
		var e models.AuditEvent
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Verb, &e.Description, &e.SubjectType, &e.SubjectID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func (r *auditEventsRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM audit_events`).Scan(&n)
	return n, err
}

func (r *auditEventsRepo) CountOnDay(ctx context.Context, day time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM audit_events WHERE created_at::date = $1::date`,
		day.Format("2006-01-02"),
	).Scan(&n)
	return n, err
}

func (r *auditEventsRepo) CountDistinctActorsSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(DISTINCT actor_id) FROM audit_events WHERE actor_id IS NOT NULL AND created_at >= $1`,
		since,
	).Scan(&n)
	return n, err
}

func (r *auditEventsRepo) CountErrorsSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM audit_events
		  WHERE created_at >= $1 AND (verb ILIKE '%error%' OR description ILIKE '%error%')`,
		since,
	).Scan(&n)
	return n, err
}

func (r *auditEventsRepo) CountByVerb(ctx context.Context, verbs []string) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT verb, count(*) FROM audit_events WHERE verb = ANY($1) GROUP BY verb`,
		verbs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64, len(verbs))
	for rows.Next() {
		var verb string
		var n int64
		if err := rows.Scan(&verb, &n); err != nil {
			return nil, err
		}
		out[verb] = n
	}
	return out, rows.Err()
}

func (r *auditEventsRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	// A single DELETE is atomic over its matched row set; there is no
	// partially-purged observable state.
	tag, err := r.pool.Exec(ctx, `DELETE FROM audit_events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

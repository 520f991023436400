package repository

import "time"

// AuditFilter narrows an audit listing. Zero-valued fields are inactive;
// active predicates are AND-combined.
type AuditFilter struct {
	// Search is a case-insensitive substring matched against description,
	// verb, and the actor's name or email (OR across those fields).
	Search      string
	ActorID     string
	Verb        string
	Day         *time.Time // calendar-day match on created_at
	SubjectType string
}

// Audit sort columns accepted by the stores. Anything else falls back to
// created_at.
const (
	SortCreatedAt   = "created_at"
	SortVerb        = "verb"
	SortActorID     = "actor_id"
	SortSubjectType = "subject_type"
	SortDescription = "description"
)

var auditSortColumns = map[string]struct{}{
	SortCreatedAt: {}, SortVerb: {}, SortActorID: {}, SortSubjectType: {}, SortDescription: {},
}

type AuditSort struct {
	Column string
	Desc   bool
}

// DefaultAuditSort is newest-first.
func DefaultAuditSort() AuditSort {
	return AuditSort{Column: SortCreatedAt, Desc: true}
}

// Toggle applies the header-click rule: clicking the current column flips
// the direction, clicking a new column switches to it ascending.
func (s *AuditSort) Toggle(column string) {
	if _, ok := auditSortColumns[column]; !ok {
		return
	}
	if s.Column == column {
		s.Desc = !s.Desc
		return
	}
	s.Column = column
	s.Desc = false
}

// Normalize forces the sort onto a known column so stores can interpolate
// it into ORDER BY safely.
func (s *AuditSort) Normalize() {
	if _, ok := auditSortColumns[s.Column]; !ok {
		s.Column = SortCreatedAt
	}
}

func (s AuditSort) Direction() string {
	if s.Desc {
		return "DESC"
	}
	return "ASC"
}

// EnrollmentFilter narrows an enrollment listing.
type EnrollmentFilter struct {
	StudentID string
	SubjectID string
	Status    string
}

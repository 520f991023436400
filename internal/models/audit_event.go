package models

import "time"

// Recommended verb vocabulary. The column itself is a free string so new
// screens can log verbs without a migration.
const (
	VerbAccess     = "access"
	VerbCreate     = "create"
	VerbUpdate     = "update"
	VerbDelete     = "delete"
	VerbView       = "view"
	VerbExport     = "export"
	VerbBulkDelete = "bulk_delete"
	VerbLogin      = "login"
)

// AuditEvent is one immutable "who did what, to what, when" record.
// Rows are only ever created, or removed in bulk by the retention purge.
// SubjectType/SubjectID are an advisory pointer: they are set together or
// not at all, and may refer to a since-deleted entity.
type AuditEvent struct {
	ID          string         `json:"id"`
	ActorID     *string        `json:"actor_id"`
	Verb        string         `json:"verb"`
	Description string         `json:"description"`
	SubjectType *string        `json:"subject_type"`
	SubjectID   *string        `json:"subject_id"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

package models

import "time"

type EnrollmentStatus string

const (
	EnrollPending   EnrollmentStatus = "pending"
	EnrollActive    EnrollmentStatus = "active"
	EnrollCompleted EnrollmentStatus = "completed"
	EnrollCancelled EnrollmentStatus = "cancelled"
)

type Enrollment struct {
	ID            string           `json:"id"`
	StudentID     string           `json:"student_id"`
	SubjectID     string           `json:"subject_id"`
	PaymentPlanID *string          `json:"payment_plan_id,omitempty"`
	Status        EnrollmentStatus `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CanTransition reports whether an enrollment may move to the given status.
// Completed and cancelled are terminal.
func (e *Enrollment) CanTransition(to EnrollmentStatus) bool {
	switch e.Status {
	case EnrollPending:
		return to == EnrollActive || to == EnrollCancelled
	case EnrollActive:
		return to == EnrollCompleted || to == EnrollCancelled
	default:
		return false
	}
}

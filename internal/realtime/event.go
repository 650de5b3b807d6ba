// Package realtime carries enrollment lifecycle events between processes.
package realtime

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventEnrollmentCreated   = "enrollment.created"
	EventEnrollmentProgress  = "enrollment.progress"
	EventEnrollmentCompleted = "enrollment.completed"
)

type Event struct {
	Type          string    `json:"type"`
	UserID        string    `json:"user_id"`
	CourseID      uuid.UUID `json:"course_id"`
	EnrollmentID  uuid.UUID `json:"enrollment_id"`
	Progress      int       `json:"progress"`
	EnrolledCount int       `json:"enrolled_count,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var EnrollmentAggregateContract = Contract{
	Name:      "Catalog.EnrollmentAggregate",
	OwnsTx:    true,
	Invariant: "courses.enrolled_count equals the number of enrollment rows for the course",
}

// MinProgress and MaxProgress bound Enrollment.Progress.
const (
	MinProgress = 0
	MaxProgress = 100
)

// EnrollmentAggregate owns enrollment lifecycle invariants.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeConflict, CodeRetryable, CodeInternal.
type EnrollmentAggregate interface {
	Aggregate

	// Enroll inserts the (user, course) enrollment and bumps the course counter in one transaction.
	Enroll(ctx context.Context, in EnrollInput) (EnrollResult, error)

	// SetProgress records progress and stamps completion the first time progress reaches MaxProgress.
	// Found is false when the enrollment does not exist.
	SetProgress(ctx context.Context, in SetProgressInput) (SetProgressResult, error)
}

type EnrollInput struct {
	UserID     string
	CourseID   uuid.UUID
	EnrolledAt time.Time
}

type EnrollResult struct {
	EnrollmentID  uuid.UUID
	UserID        string
	CourseID      uuid.UUID
	Progress      int
	EnrolledAt    time.Time
	EnrolledCount int
}

type SetProgressInput struct {
	EnrollmentID uuid.UUID
	Progress     int
	ObservedAt   time.Time
}

type SetProgressResult struct {
	Found        bool
	EnrollmentID uuid.UUID
	UserID       string
	CourseID     uuid.UUID
	Progress     int
	EnrolledAt   time.Time
	CompletedAt  *time.Time
	// Completed is true when this call moved the enrollment into the completed state.
	Completed bool
}

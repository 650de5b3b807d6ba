package domain

import (
	"time"

	"github.com/google/uuid"
)

// CompleteProgress is the progress value that marks an enrollment completed.
const CompleteProgress = 100

// Enrollment links one user to one course. The (user_id, course_id) pair is unique and both
// foreign keys cascade on delete, so removing a user or course removes its enrollments.
type Enrollment struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID      string     `gorm:"column:user_id;type:varchar(255);not null;uniqueIndex:idx_enrollments_user_course,priority:1" json:"user_id"`
	User        *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	CourseID    uuid.UUID  `gorm:"column:course_id;type:uuid;not null;uniqueIndex:idx_enrollments_user_course,priority:2;index" json:"course_id"`
	Course      *Course    `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"-"`
	Progress    int        `gorm:"column:progress;not null;default:0" json:"progress"`
	EnrolledAt  time.Time  `gorm:"column:enrolled_at;not null;index" json:"enrolled_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

func (Enrollment) TableName() string { return "enrollments" }

// EnrollmentWithCourse is one row of a user's enrollment listing.
type EnrollmentWithCourse struct {
	Enrollment
	Course Course `json:"course"`
}

// Completed reports whether the enrollment has ever reached full progress.
func (e *Enrollment) Completed() bool {
	return e != nil && e.CompletedAt != nil
}

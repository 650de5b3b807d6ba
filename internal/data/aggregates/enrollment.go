package aggregates

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/coursehub-backend/internal/data/repos"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	domainagg "github.com/yungbote/coursehub-backend/internal/domain/aggregates"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
)

type EnrollmentAggregateDeps struct {
	Base BaseDeps

	Users       repos.UserRepo
	Courses     repos.CourseRepo
	Enrollments repos.EnrollmentRepo
}

type enrollmentAggregate struct {
	deps EnrollmentAggregateDeps
}

func NewEnrollmentAggregate(deps EnrollmentAggregateDeps) domainagg.EnrollmentAggregate {
	deps.Base = deps.Base.withDefaults()
	return &enrollmentAggregate{deps: deps}
}

func (a *enrollmentAggregate) Contract() domainagg.Contract {
	return domainagg.EnrollmentAggregateContract
}

// Enroll verifies both parents, inserts the enrollment, and increments the course
// counter in one transaction. The course row is locked first so concurrent enrolls
// on one course serialize; a duplicate pair fails on the unique index and rolls back
// before the increment runs.
func (a *enrollmentAggregate) Enroll(ctx context.Context, in domainagg.EnrollInput) (domainagg.EnrollResult, error) {
	const op = "Catalog.EnrollmentAggregate.Enroll"
	var out domainagg.EnrollResult

	if err := RequireNonEmpty("user_id", in.UserID); err != nil {
		return out, rejectWrite(a.deps.Base, op, err)
	}
	if in.CourseID == uuid.Nil {
		return out, rejectWrite(a.deps.Base, op, ValidationError("course_id is required"))
	}
	enrolledAt := in.EnrolledAt
	if enrolledAt.IsZero() {
		enrolledAt = a.deps.Base.Now()
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		user, err := a.deps.Users.GetByID(dbc, in.UserID)
		if err != nil {
			return err
		}
		if err := RequireFound(user != nil, "user"); err != nil {
			return err
		}

		course, err := a.deps.Courses.LockByID(dbc, in.CourseID)
		if err != nil {
			return err
		}
		if err := RequireFound(course != nil, "course"); err != nil {
			return err
		}

		row, err := a.deps.Enrollments.Create(dbc, &types.Enrollment{
			UserID:     in.UserID,
			CourseID:   in.CourseID,
			EnrolledAt: enrolledAt.UTC(),
		})
		if err != nil {
			return err
		}

		count, err := a.deps.Courses.IncrementEnrolledCount(dbc, in.CourseID, 1)
		if err != nil {
			return err
		}
		if err := RequireIncrementApplied(course.EnrolledCount, count, 1); err != nil {
			return err
		}

		out = domainagg.EnrollResult{
			EnrollmentID:  row.ID,
			UserID:        row.UserID,
			CourseID:      row.CourseID,
			Progress:      row.Progress,
			EnrolledAt:    row.EnrolledAt,
			EnrolledCount: count,
		}
		return nil
	})
	if err != nil {
		return domainagg.EnrollResult{}, err
	}
	return out, nil
}

// SetProgress rejects out-of-range values before touching the store.
func (a *enrollmentAggregate) SetProgress(ctx context.Context, in domainagg.SetProgressInput) (domainagg.SetProgressResult, error) {
	const op = "Catalog.EnrollmentAggregate.SetProgress"
	var out domainagg.SetProgressResult

	if err := RequireProgressInRange(in.Progress); err != nil {
		return out, rejectWrite(a.deps.Base, op, err)
	}
	if in.EnrollmentID == uuid.Nil {
		return out, nil
	}
	observedAt := in.ObservedAt
	if observedAt.IsZero() {
		observedAt = a.deps.Base.Now()
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		before, err := a.deps.Enrollments.GetByID(dbc, in.EnrollmentID)
		if err != nil {
			return err
		}
		if before == nil {
			return nil
		}

		found, err := a.deps.Enrollments.UpdateProgress(dbc, in.EnrollmentID, in.Progress, observedAt)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}

		after, err := a.deps.Enrollments.GetByID(dbc, in.EnrollmentID)
		if err != nil {
			return err
		}
		if after == nil {
			return nil
		}
		if in.Progress == domainagg.MaxProgress && !after.Completed() {
			return InvariantError("completed_at missing after reaching full progress")
		}

		out = domainagg.SetProgressResult{
			Found:        true,
			EnrollmentID: after.ID,
			UserID:       after.UserID,
			CourseID:     after.CourseID,
			Progress:     after.Progress,
			EnrolledAt:   after.EnrolledAt,
			CompletedAt:  after.CompletedAt,
			Completed:    !before.Completed() && after.Completed(),
		}
		return nil
	})
	if err != nil {
		return domainagg.SetProgressResult{}, err
	}
	return out, nil
}

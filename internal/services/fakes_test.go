package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/coursehub-backend/internal/domain"
	domainagg "github.com/yungbote/coursehub-backend/internal/domain/aggregates"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
	"github.com/yungbote/coursehub-backend/internal/realtime"
)

type fakeEnrollmentAggregate struct {
	enrollCalls   int
	progressCalls int
	lastEnroll    domainagg.EnrollInput
	lastProgress  domainagg.SetProgressInput

	enrollErr   error
	onEnroll    func(in domainagg.EnrollInput)
	progressRes domainagg.SetProgressResult
	progressErr error
}

func (f *fakeEnrollmentAggregate) Contract() domainagg.Contract {
	return domainagg.EnrollmentAggregateContract
}

func (f *fakeEnrollmentAggregate) Enroll(_ context.Context, in domainagg.EnrollInput) (domainagg.EnrollResult, error) {
	f.enrollCalls++
	f.lastEnroll = in
	if f.onEnroll != nil {
		f.onEnroll(in)
	}
	if f.enrollErr != nil {
		return domainagg.EnrollResult{}, f.enrollErr
	}
	return domainagg.EnrollResult{
		EnrollmentID:  uuid.New(),
		UserID:        in.UserID,
		CourseID:      in.CourseID,
		EnrolledAt:    in.EnrolledAt,
		EnrolledCount: 11,
	}, nil
}

func (f *fakeEnrollmentAggregate) SetProgress(_ context.Context, in domainagg.SetProgressInput) (domainagg.SetProgressResult, error) {
	f.progressCalls++
	f.lastProgress = in
	return f.progressRes, f.progressErr
}

// fakeEnrollmentRepo serves reads from an in-memory slice.
type fakeEnrollmentRepo struct {
	rows []*types.Enrollment
}

func (f *fakeEnrollmentRepo) Create(_ dbctx.Context, row *types.Enrollment) (*types.Enrollment, error) {
	f.rows = append(f.rows, row)
	return row, nil
}

func (f *fakeEnrollmentRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.Enrollment, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeEnrollmentRepo) GetByUserAndCourse(_ dbctx.Context, userID string, courseID uuid.UUID) (*types.Enrollment, error) {
	for _, r := range f.rows {
		if r.UserID == userID && r.CourseID == courseID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeEnrollmentRepo) ListWithCourseByUser(_ dbctx.Context, userID string) ([]*types.EnrollmentWithCourse, error) {
	out := []*types.EnrollmentWithCourse{}
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, &types.EnrollmentWithCourse{Enrollment: *r})
		}
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) Count(_ dbctx.Context) (int64, error) {
	return int64(len(f.rows)), nil
}

func (f *fakeEnrollmentRepo) CountByCourse(_ dbctx.Context, courseID uuid.UUID) (int64, error) {
	var n int64
	for _, r := range f.rows {
		if r.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (f *fakeEnrollmentRepo) UpdateProgress(_ dbctx.Context, id uuid.UUID, progress int, observedAt time.Time) (bool, error) {
	for _, r := range f.rows {
		if r.ID == id {
			r.Progress = progress
			if progress == types.CompleteProgress && r.CompletedAt == nil {
				at := observedAt
				r.CompletedAt = &at
			}
			return true, nil
		}
	}
	return false, nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []realtime.Event
	err    error
}

func (b *recordingBus) Publish(_ context.Context, ev realtime.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
	return b.err
}

func (b *recordingBus) StartForwarder(context.Context, func(realtime.Event)) error { return nil }

func (b *recordingBus) Close() error { return nil }

func (b *recordingBus) eventTypes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, ev := range b.events {
		out = append(out, ev.Type)
	}
	return out
}

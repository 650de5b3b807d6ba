package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/coursehub-backend/internal/domain"
	domainagg "github.com/yungbote/coursehub-backend/internal/domain/aggregates"
	"github.com/yungbote/coursehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/realtime"
	"github.com/yungbote/coursehub-backend/internal/realtime/bus"
)

func newTestEnrollmentService(t *testing.T, repo *fakeEnrollmentRepo, agg *fakeEnrollmentAggregate, rec *recordingBus) EnrollmentService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	var events bus.Bus
	if rec != nil {
		events = rec
	}
	svc, err := NewEnrollmentService(log, repo, agg, events)
	if err != nil {
		t.Fatalf("NewEnrollmentService: %v", err)
	}
	return svc
}

func TestNewEnrollmentServiceRequiresDeps(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	if _, err := NewEnrollmentService(log, nil, &fakeEnrollmentAggregate{}, nil); err == nil {
		t.Fatalf("expected error for nil repo")
	}
	if _, err := NewEnrollmentService(log, &fakeEnrollmentRepo{}, nil, nil); err == nil {
		t.Fatalf("expected error for nil aggregate")
	}
}

func TestEnrollmentServiceCreateDelegatesAndPublishes(t *testing.T) {
	agg := &fakeEnrollmentAggregate{}
	events := &recordingBus{}
	svc := newTestEnrollmentService(t, &fakeEnrollmentRepo{}, agg, events)

	courseID := uuid.New()
	row, err := svc.Create(context.Background(), " u1 ", courseID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if agg.enrollCalls != 1 {
		t.Fatalf("enroll calls: want=1 got=%d", agg.enrollCalls)
	}
	if agg.lastEnroll.UserID != "u1" || agg.lastEnroll.CourseID != courseID {
		t.Fatalf("enroll input: got=%+v", agg.lastEnroll)
	}
	if row.Progress != 0 || row.CompletedAt != nil {
		t.Fatalf("new enrollment: progress=%d completed_at=%v", row.Progress, row.CompletedAt)
	}
	got := events.eventTypes()
	if len(got) != 1 || got[0] != realtime.EventEnrollmentCreated {
		t.Fatalf("events: got=%v", got)
	}
	if events.events[0].EnrolledCount != 11 {
		t.Fatalf("event enrolled_count: want=11 got=%d", events.events[0].EnrolledCount)
	}
}

func TestEnrollmentServiceCreatePublishFailureDoesNotFail(t *testing.T) {
	events := &recordingBus{err: errors.New("redis down")}
	svc := newTestEnrollmentService(t, &fakeEnrollmentRepo{}, &fakeEnrollmentAggregate{}, events)
	if _, err := svc.Create(context.Background(), "u1", uuid.New()); err != nil {
		t.Fatalf("Create with failing bus: %v", err)
	}
}

func TestEnrollmentServiceCreatePropagatesConflict(t *testing.T) {
	agg := &fakeEnrollmentAggregate{
		enrollErr: domainagg.NewError(domainagg.CodeConflict, "op", "duplicate", nil),
	}
	events := &recordingBus{}
	svc := newTestEnrollmentService(t, &fakeEnrollmentRepo{}, agg, events)

	_, err := svc.Create(context.Background(), "u1", uuid.New())
	if !domainagg.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(events.eventTypes()) != 0 {
		t.Fatalf("no event expected on failure")
	}
}

func TestEnrollIfAbsentReturnsExisting(t *testing.T) {
	courseID := uuid.New()
	existing := &types.Enrollment{ID: uuid.New(), UserID: "u1", CourseID: courseID, Progress: 40}
	repo := &fakeEnrollmentRepo{rows: []*types.Enrollment{existing}}
	agg := &fakeEnrollmentAggregate{}
	svc := newTestEnrollmentService(t, repo, agg, nil)

	row, created, err := svc.EnrollIfAbsent(context.Background(), "u1", courseID)
	if err != nil {
		t.Fatalf("EnrollIfAbsent: %v", err)
	}
	if created {
		t.Fatalf("expected created=false for existing row")
	}
	if row.ID != existing.ID {
		t.Fatalf("row id: want=%s got=%s", existing.ID, row.ID)
	}
	if agg.enrollCalls != 0 {
		t.Fatalf("enroll calls: want=0 got=%d", agg.enrollCalls)
	}
}

func TestEnrollIfAbsentResolvesRaceByReread(t *testing.T) {
	courseID := uuid.New()
	repo := &fakeEnrollmentRepo{}
	winnerID := uuid.New()
	agg := &fakeEnrollmentAggregate{
		enrollErr: domainagg.NewError(domainagg.CodeConflict, "op", "duplicate", nil),
		onEnroll: func(in domainagg.EnrollInput) {
			repo.rows = append(repo.rows, &types.Enrollment{ID: winnerID, UserID: in.UserID, CourseID: in.CourseID})
		},
	}
	svc := newTestEnrollmentService(t, repo, agg, nil)

	row, created, err := svc.EnrollIfAbsent(context.Background(), "u1", courseID)
	if err != nil {
		t.Fatalf("EnrollIfAbsent: %v", err)
	}
	if created {
		t.Fatalf("expected created=false when another request won")
	}
	if row.ID != winnerID {
		t.Fatalf("row id: want=%s got=%s", winnerID, row.ID)
	}
}

func TestEnrollIfAbsentCreates(t *testing.T) {
	svc := newTestEnrollmentService(t, &fakeEnrollmentRepo{}, &fakeEnrollmentAggregate{}, nil)
	_, created, err := svc.EnrollIfAbsent(context.Background(), "u1", uuid.New())
	if err != nil {
		t.Fatalf("EnrollIfAbsent: %v", err)
	}
	if !created {
		t.Fatalf("expected created=true")
	}
}

func TestUpdateProgressRejectsOutOfRangeBeforeAggregate(t *testing.T) {
	agg := &fakeEnrollmentAggregate{}
	svc := newTestEnrollmentService(t, &fakeEnrollmentRepo{}, agg, nil)

	for _, p := range []int{-1, 101} {
		_, err := svc.UpdateProgress(context.Background(), uuid.New(), p)
		if !domainagg.IsValidation(err) {
			t.Fatalf("progress %d: expected validation, got %v", p, err)
		}
	}
	if agg.progressCalls != 0 {
		t.Fatalf("progress calls: want=0 got=%d", agg.progressCalls)
	}
}

func TestUpdateProgressRejectsOtherUsersEnrollment(t *testing.T) {
	row := &types.Enrollment{ID: uuid.New(), UserID: "owner", CourseID: uuid.New()}
	agg := &fakeEnrollmentAggregate{}
	svc := newTestEnrollmentService(t, &fakeEnrollmentRepo{rows: []*types.Enrollment{row}}, agg, nil)

	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: "intruder"})
	_, err := svc.UpdateProgress(ctx, row.ID, 50)
	if !errors.Is(err, ErrNotEnrollmentOwner) {
		t.Fatalf("expected ErrNotEnrollmentOwner, got %v", err)
	}
	if agg.progressCalls != 0 {
		t.Fatalf("progress calls: want=0 got=%d", agg.progressCalls)
	}
}

func TestUpdateProgressMissingEnrollmentIsAbsent(t *testing.T) {
	svc := newTestEnrollmentService(t, &fakeEnrollmentRepo{}, &fakeEnrollmentAggregate{}, nil)
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: "u1"})
	row, err := svc.UpdateProgress(ctx, uuid.New(), 10)
	if err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if row != nil {
		t.Fatalf("expected nil for missing enrollment")
	}
}

func TestUpdateProgressPublishesCompletion(t *testing.T) {
	completedAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	row := &types.Enrollment{ID: uuid.New(), UserID: "u1", CourseID: uuid.New()}
	agg := &fakeEnrollmentAggregate{progressRes: domainagg.SetProgressResult{
		Found:        true,
		EnrollmentID: row.ID,
		UserID:       row.UserID,
		CourseID:     row.CourseID,
		Progress:     100,
		CompletedAt:  &completedAt,
		Completed:    true,
	}}
	events := &recordingBus{}
	svc := newTestEnrollmentService(t, &fakeEnrollmentRepo{rows: []*types.Enrollment{row}}, agg, events)

	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: "u1"})
	out, err := svc.UpdateProgress(ctx, row.ID, 100)
	if err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if out.CompletedAt == nil || !out.CompletedAt.Equal(completedAt) {
		t.Fatalf("completed_at: want=%s got=%v", completedAt, out.CompletedAt)
	}
	got := events.eventTypes()
	if len(got) != 2 || got[0] != realtime.EventEnrollmentProgress || got[1] != realtime.EventEnrollmentCompleted {
		t.Fatalf("events: got=%v", got)
	}
}

func TestUpdateProgressWithoutCompletionPublishesProgressOnly(t *testing.T) {
	row := &types.Enrollment{ID: uuid.New(), UserID: "u1", CourseID: uuid.New()}
	agg := &fakeEnrollmentAggregate{progressRes: domainagg.SetProgressResult{
		Found:        true,
		EnrollmentID: row.ID,
		UserID:       row.UserID,
		CourseID:     row.CourseID,
		Progress:     60,
	}}
	events := &recordingBus{}
	svc := newTestEnrollmentService(t, &fakeEnrollmentRepo{rows: []*types.Enrollment{row}}, agg, events)

	if _, err := svc.UpdateProgress(context.Background(), row.ID, 60); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if agg.lastProgress.Progress != 60 {
		t.Fatalf("progress input: want=60 got=%d", agg.lastProgress.Progress)
	}
	got := events.eventTypes()
	if len(got) != 1 || got[0] != realtime.EventEnrollmentProgress {
		t.Fatalf("events: got=%v", got)
	}
}

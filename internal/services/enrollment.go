package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dataagg "github.com/yungbote/coursehub-backend/internal/data/aggregates"
	"github.com/yungbote/coursehub-backend/internal/data/repos"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	domainagg "github.com/yungbote/coursehub-backend/internal/domain/aggregates"
	"github.com/yungbote/coursehub-backend/internal/observability"
	"github.com/yungbote/coursehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/realtime"
	"github.com/yungbote/coursehub-backend/internal/realtime/bus"
)

// ErrNotEnrollmentOwner is returned when the caller updates an enrollment that belongs to another user.
var ErrNotEnrollmentOwner = errors.New("enrollment belongs to another user")

type EnrollmentService interface {
	// Create enrolls the user and increments the course counter atomically.
	// A duplicate pair is a conflict; a missing user or course is not_found.
	Create(ctx context.Context, userID string, courseID uuid.UUID) (*types.Enrollment, error)
	// EnrollIfAbsent returns the existing enrollment when there is one. created reports
	// whether this call inserted the row.
	EnrollIfAbsent(ctx context.Context, userID string, courseID uuid.UUID) (row *types.Enrollment, created bool, err error)
	// GetByCourse returns nil when the user is not enrolled.
	GetByCourse(ctx context.Context, userID string, courseID uuid.UUID) (*types.Enrollment, error)
	// GetEnrollments lists the user's enrollments with their courses, newest first.
	GetEnrollments(ctx context.Context, userID string) ([]*types.EnrollmentWithCourse, error)
	// UpdateProgress returns nil when the enrollment does not exist. Reaching full progress
	// stamps completed_at once; lower values leave it as is.
	UpdateProgress(ctx context.Context, id uuid.UUID, progress int) (*types.Enrollment, error)
}

type enrollmentService struct {
	log         *logger.Logger
	enrollments repos.EnrollmentRepo
	agg         domainagg.EnrollmentAggregate
	events      bus.Bus
	now         func() time.Time
}

// NewEnrollmentService wires the lifecycle aggregate for writes and the table repo for reads.
// events may be nil.
func NewEnrollmentService(
	log *logger.Logger,
	enrollments repos.EnrollmentRepo,
	agg domainagg.EnrollmentAggregate,
	events bus.Bus,
) (EnrollmentService, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if enrollments == nil {
		return nil, fmt.Errorf("enrollment repo required")
	}
	if agg == nil {
		return nil, fmt.Errorf("enrollment aggregate required")
	}
	return &enrollmentService{
		log:         log.With("service", "EnrollmentService"),
		enrollments: enrollments,
		agg:         agg,
		events:      events,
		now:         time.Now,
	}, nil
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return observability.Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(domainagg.CodeOf(err)))
	}
	span.End()
}

func (s *enrollmentService) Create(ctx context.Context, userID string, courseID uuid.UUID) (out *types.Enrollment, err error) {
	ctx, span := startSpan(ctx, "EnrollmentService.Create", attribute.String("course_id", courseID.String()))
	defer func() { endSpan(span, err) }()

	res, err := s.agg.Enroll(ctx, domainagg.EnrollInput{
		UserID:     strings.TrimSpace(userID),
		CourseID:   courseID,
		EnrolledAt: s.now(),
	})
	if err != nil {
		return nil, err
	}
	observability.Current().IncEnrollmentCreated()
	s.publish(ctx, realtime.Event{
		Type:          realtime.EventEnrollmentCreated,
		UserID:        res.UserID,
		CourseID:      res.CourseID,
		EnrollmentID:  res.EnrollmentID,
		Progress:      res.Progress,
		EnrolledCount: res.EnrolledCount,
		OccurredAt:    res.EnrolledAt,
	})
	return &types.Enrollment{
		ID:         res.EnrollmentID,
		UserID:     res.UserID,
		CourseID:   res.CourseID,
		Progress:   res.Progress,
		EnrolledAt: res.EnrolledAt,
	}, nil
}

func (s *enrollmentService) EnrollIfAbsent(ctx context.Context, userID string, courseID uuid.UUID) (*types.Enrollment, bool, error) {
	existing, err := s.GetByCourse(ctx, userID, courseID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	row, err := s.Create(ctx, userID, courseID)
	if err == nil {
		return row, true, nil
	}
	if !domainagg.IsConflict(err) {
		return nil, false, err
	}

	// A concurrent request won the insert; return its row.
	winner, rerr := s.GetByCourse(ctx, userID, courseID)
	if rerr != nil {
		return nil, false, rerr
	}
	if winner == nil {
		return nil, false, err
	}
	return winner, false, nil
}

func (s *enrollmentService) GetByCourse(ctx context.Context, userID string, courseID uuid.UUID) (*types.Enrollment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || courseID == uuid.Nil {
		return nil, nil
	}
	row, err := s.enrollments.GetByUserAndCourse(dbctx.Context{Ctx: ctx}, userID, courseID)
	if err != nil {
		return nil, dataagg.MapError("EnrollmentService.GetByCourse", err)
	}
	return row, nil
}

func (s *enrollmentService) GetEnrollments(ctx context.Context, userID string) ([]*types.EnrollmentWithCourse, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []*types.EnrollmentWithCourse{}, nil
	}
	rows, err := s.enrollments.ListWithCourseByUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, dataagg.MapError("EnrollmentService.GetEnrollments", err)
	}
	return rows, nil
}

func (s *enrollmentService) UpdateProgress(ctx context.Context, id uuid.UUID, progress int) (out *types.Enrollment, err error) {
	const op = "EnrollmentService.UpdateProgress"
	ctx, span := startSpan(ctx, op,
		attribute.String("enrollment_id", id.String()),
		attribute.Int("progress", progress),
	)
	defer func() { endSpan(span, err) }()

	if progress < domainagg.MinProgress || progress > domainagg.MaxProgress {
		return nil, domainagg.NewError(domainagg.CodeValidation, op,
			fmt.Sprintf("progress must be between %d and %d", domainagg.MinProgress, domainagg.MaxProgress), nil)
	}
	if id == uuid.Nil {
		return nil, nil
	}

	if rd := ctxutil.GetRequestData(ctx); rd != nil {
		current, err := s.enrollments.GetByID(dbctx.Context{Ctx: ctx}, id)
		if err != nil {
			return nil, dataagg.MapError(op, err)
		}
		if current == nil {
			return nil, nil
		}
		if current.UserID != rd.UserID {
			return nil, ErrNotEnrollmentOwner
		}
	}

	res, err := s.agg.SetProgress(ctx, domainagg.SetProgressInput{
		EnrollmentID: id,
		Progress:     progress,
		ObservedAt:   s.now(),
	})
	if err != nil {
		return nil, err
	}
	if !res.Found {
		return nil, nil
	}

	s.publish(ctx, realtime.Event{
		Type:         realtime.EventEnrollmentProgress,
		UserID:       res.UserID,
		CourseID:     res.CourseID,
		EnrollmentID: res.EnrollmentID,
		Progress:     res.Progress,
		OccurredAt:   s.now(),
	})
	if res.Completed {
		observability.Current().IncEnrollmentCompleted()
		s.publish(ctx, realtime.Event{
			Type:         realtime.EventEnrollmentCompleted,
			UserID:       res.UserID,
			CourseID:     res.CourseID,
			EnrollmentID: res.EnrollmentID,
			Progress:     res.Progress,
			OccurredAt:   *res.CompletedAt,
		})
	}

	return &types.Enrollment{
		ID:          res.EnrollmentID,
		UserID:      res.UserID,
		CourseID:    res.CourseID,
		Progress:    res.Progress,
		EnrolledAt:  res.EnrolledAt,
		CompletedAt: res.CompletedAt,
	}, nil
}

// publish is best effort; the write has already committed.
func (s *enrollmentService) publish(ctx context.Context, ev realtime.Event) {
	if s.events == nil {
		return
	}
	status := "ok"
	if err := s.events.Publish(ctx, ev); err != nil {
		status = "error"
		s.log.Warn("enrollment event publish failed", "event", ev.Type, "enrollment_id", ev.EnrollmentID, "error", err)
	}
	observability.Current().IncBusPublish(ev.Type, status)
}

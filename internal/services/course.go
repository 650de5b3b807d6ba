package services

import (
	"context"

	"github.com/google/uuid"

	dataagg "github.com/yungbote/coursehub-backend/internal/data/aggregates"
	"github.com/yungbote/coursehub-backend/internal/data/repos"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type CourseService interface {
	// List orders by enrolled_count descending.
	List(ctx context.Context) ([]*types.Course, error)
	// Get returns nil when the course does not exist.
	Get(ctx context.Context, id uuid.UUID) (*types.Course, error)
	Create(ctx context.Context, in types.CourseInput) (*types.Course, error)
	// Update applies only the non-nil patch fields and returns nil when the course does not exist.
	Update(ctx context.Context, id uuid.UUID, patch types.CoursePatch) (*types.Course, error)
	// Delete cascades to the course's enrollments. Deleting a missing course is a no-op.
	Delete(ctx context.Context, id uuid.UUID) error
}

type courseService struct {
	log     *logger.Logger
	courses repos.CourseRepo
}

func NewCourseService(log *logger.Logger, courses repos.CourseRepo) CourseService {
	return &courseService{
		log:     log.With("service", "CourseService"),
		courses: courses,
	}
}

func (s *courseService) List(ctx context.Context) ([]*types.Course, error) {
	rows, err := s.courses.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, dataagg.MapError("CourseService.List", err)
	}
	return rows, nil
}

func (s *courseService) Get(ctx context.Context, id uuid.UUID) (*types.Course, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	row, err := s.courses.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, dataagg.MapError("CourseService.Get", err)
	}
	return row, nil
}

func (s *courseService) Create(ctx context.Context, in types.CourseInput) (*types.Course, error) {
	const op = "CourseService.Create"
	if err := types.Validate(op, in); err != nil {
		return nil, err
	}
	row, err := s.courses.Create(dbctx.Context{Ctx: ctx}, in.Record())
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	s.log.Info("course created", "course_id", row.ID)
	return row, nil
}

func (s *courseService) Update(ctx context.Context, id uuid.UUID, patch types.CoursePatch) (*types.Course, error) {
	const op = "CourseService.Update"
	if err := types.Validate(op, patch); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, nil
	}
	dbc := dbctx.Context{Ctx: ctx}
	found, err := s.courses.UpdateFields(dbc, id, patch.Columns())
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if !found {
		return nil, nil
	}
	row, err := s.courses.GetByID(dbc, id)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return row, nil
}

func (s *courseService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	found, err := s.courses.Delete(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return dataagg.MapError("CourseService.Delete", err)
	}
	if found {
		s.log.Info("course deleted", "course_id", id)
	}
	return nil
}

package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	dataagg "github.com/yungbote/coursehub-backend/internal/data/aggregates"
	"github.com/yungbote/coursehub-backend/internal/data/repos"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

// Stats is an advisory snapshot; the three counts are not read in one transaction.
type Stats struct {
	TotalCourses     int64 `json:"total_courses"`
	TotalEnrollments int64 `json:"total_enrollments"`
	TotalStudents    int64 `json:"total_students"`
}

type StatsService interface {
	AdminStats(ctx context.Context) (Stats, error)
}

type statsService struct {
	log         *logger.Logger
	users       repos.UserRepo
	courses     repos.CourseRepo
	enrollments repos.EnrollmentRepo
}

func NewStatsService(log *logger.Logger, users repos.UserRepo, courses repos.CourseRepo, enrollments repos.EnrollmentRepo) StatsService {
	return &statsService{
		log:         log.With("service", "StatsService"),
		users:       users,
		courses:     courses,
		enrollments: enrollments,
	}
}

func (s *statsService) AdminStats(ctx context.Context) (Stats, error) {
	var out Stats
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.Context{Ctx: gctx}
	g.Go(func() error {
		n, err := s.courses.Count(dbc)
		out.TotalCourses = n
		return err
	})
	g.Go(func() error {
		n, err := s.enrollments.Count(dbc)
		out.TotalEnrollments = n
		return err
	})
	g.Go(func() error {
		n, err := s.users.Count(dbc)
		out.TotalStudents = n
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, dataagg.MapError("StatsService.AdminStats", err)
	}
	return out, nil
}

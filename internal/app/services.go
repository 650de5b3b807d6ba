package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/aggregates"
	"github.com/yungbote/coursehub-backend/internal/data/repos"
	"github.com/yungbote/coursehub-backend/internal/observability"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/realtime/bus"
	"github.com/yungbote/coursehub-backend/internal/services"
)

type Services struct {
	Tokens      services.TokenVerifier
	User        services.UserService
	Course      services.CourseService
	Enrollment  services.EnrollmentService
	Testimonial services.TestimonialService
	Stats       services.StatsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet repos.Set, metrics *observability.Metrics, events bus.Bus) (Services, error) {
	log.Info("Wiring services...")

	tokens, err := services.NewHMACTokenVerifier(cfg.Auth.JWTSecretKey, cfg.Auth.Issuer)
	if err != nil {
		return Services{}, fmt.Errorf("init token verifier: %w", err)
	}

	enrollmentAgg := aggregates.NewEnrollmentAggregate(aggregates.EnrollmentAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:        db,
			Log:       log,
			Runner:    aggregates.NewGormTxRunner(db),
			Hooks:     aggregates.NewObservabilityHooks(metrics),
			OpTimeout: cfg.DB.OpTimeout,
		},
		Users:       reposet.Users,
		Courses:     reposet.Courses,
		Enrollments: reposet.Enrollments,
	})

	enrollments, err := services.NewEnrollmentService(log, reposet.Enrollments, enrollmentAgg, events)
	if err != nil {
		return Services{}, fmt.Errorf("init enrollment service: %w", err)
	}

	return Services{
		Tokens:      tokens,
		User:        services.NewUserService(log, reposet.Users),
		Course:      services.NewCourseService(log, reposet.Courses),
		Enrollment:  enrollments,
		Testimonial: services.NewTestimonialService(log, reposet.Testimonials),
		Stats:       services.NewStatsService(log, reposet.Users, reposet.Courses, reposet.Enrollments),
	}, nil
}

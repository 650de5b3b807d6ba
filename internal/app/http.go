package app

import (
	"github.com/yungbote/coursehub-backend/internal/http"
	httpH "github.com/yungbote/coursehub-backend/internal/http/handlers"
	httpMW "github.com/yungbote/coursehub-backend/internal/http/middleware"
	"github.com/yungbote/coursehub-backend/internal/observability"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health      *httpH.HealthHandler
	User        *httpH.UserHandler
	Course      *httpH.CourseHandler
	Enrollment  *httpH.EnrollmentHandler
	Testimonial *httpH.TestimonialHandler
	Admin       *httpH.AdminHandler
}

func wireHandlers(log *logger.Logger, services Services, db httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(db),
		User:        httpH.NewUserHandler(services.User),
		Course:      httpH.NewCourseHandler(log, services.Course),
		Enrollment:  httpH.NewEnrollmentHandler(log, services.Enrollment),
		Testimonial: httpH.NewTestimonialHandler(log, services.Testimonial),
		Admin:       httpH.NewAdminHandler(log, services.Stats),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Tokens, services.User),
	}
}

func routerConfig(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) http.RouterConfig {
	return http.RouterConfig{
		Log:                log,
		Metrics:            metrics,
		ServiceName:        cfg.Otel.ServiceName,
		TracingEnabled:     cfg.Otel.Enabled,
		AllowOrigins:       cfg.CORS.AllowOrigins,
		AuthMiddleware:     middleware.Auth,
		HealthHandler:      handlers.Health,
		UserHandler:        handlers.User,
		CourseHandler:      handlers.Course,
		EnrollmentHandler:  handlers.Enrollment,
		TestimonialHandler: handlers.Testimonial,
		AdminHandler:       handlers.Admin,
	}
}

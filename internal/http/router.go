package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/coursehub-backend/internal/http/handlers"
	httpMW "github.com/yungbote/coursehub-backend/internal/http/middleware"
	"github.com/yungbote/coursehub-backend/internal/observability"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	TracingEnabled bool
	AllowOrigins   []string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler      *httpH.HealthHandler
	UserHandler        *httpH.UserHandler
	CourseHandler      *httpH.CourseHandler
	EnrollmentHandler  *httpH.EnrollmentHandler
	TestimonialHandler *httpH.TestimonialHandler
	AdminHandler       *httpH.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(httpMW.Tracing(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.CourseHandler != nil {
			api.GET("/courses", cfg.CourseHandler.ListCourses)
			api.GET("/courses/:id", cfg.CourseHandler.GetCourse)
		}
		if cfg.TestimonialHandler != nil {
			api.GET("/testimonials", cfg.TestimonialHandler.ListApproved)
			api.POST("/testimonials", cfg.TestimonialHandler.Create)
		}
	}

	if cfg.AuthMiddleware == nil {
		return r
	}

	protected := api.Group("")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		if cfg.UserHandler != nil {
			protected.GET("/auth/user", cfg.UserHandler.GetMe)
		}
		if cfg.EnrollmentHandler != nil {
			protected.GET("/enrollments", cfg.EnrollmentHandler.ListMyEnrollments)
			protected.POST("/courses/:id/enroll", cfg.EnrollmentHandler.Enroll)
			protected.GET("/courses/:id/enrollment", cfg.EnrollmentHandler.GetMyEnrollment)
			protected.PATCH("/enrollments/:id/progress", cfg.EnrollmentHandler.UpdateProgress)
		}
	}

	admin := protected.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	{
		if cfg.CourseHandler != nil {
			admin.POST("/courses", cfg.CourseHandler.CreateCourse)
			admin.PATCH("/courses/:id", cfg.CourseHandler.UpdateCourse)
			admin.DELETE("/courses/:id", cfg.CourseHandler.DeleteCourse)
		}
		if cfg.TestimonialHandler != nil {
			admin.GET("/testimonials", cfg.TestimonialHandler.ListAll)
			admin.PATCH("/testimonials/:id/approval", cfg.TestimonialHandler.SetApproval)
		}
		if cfg.AdminHandler != nil {
			admin.GET("/stats", cfg.AdminHandler.Stats)
		}
	}

	return r
}

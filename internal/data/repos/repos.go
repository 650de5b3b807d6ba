package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/coursehub-backend/internal/data/repos/catalog"
	"github.com/yungbote/coursehub-backend/internal/data/repos/user"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type CourseRepo = catalog.CourseRepo
type EnrollmentRepo = catalog.EnrollmentRepo
type TestimonialRepo = catalog.TestimonialRepo

// Set is every table repo bound to one connection pool.
type Set struct {
	Users        UserRepo
	Courses      CourseRepo
	Enrollments  EnrollmentRepo
	Testimonials TestimonialRepo
}

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo {
	return user.NewUserRepo(db, log)
}

func NewCourseRepo(db *gorm.DB, log *logger.Logger) CourseRepo {
	return catalog.NewCourseRepo(db, log)
}

func NewEnrollmentRepo(db *gorm.DB, log *logger.Logger) EnrollmentRepo {
	return catalog.NewEnrollmentRepo(db, log)
}

func NewTestimonialRepo(db *gorm.DB, log *logger.Logger) TestimonialRepo {
	return catalog.NewTestimonialRepo(db, log)
}

func NewSet(db *gorm.DB, log *logger.Logger) Set {
	return Set{
		Users:        NewUserRepo(db, log),
		Courses:      NewCourseRepo(db, log),
		Enrollments:  NewEnrollmentRepo(db, log),
		Testimonials: NewTestimonialRepo(db, log),
	}
}

package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/coursehub-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, id string) *types.User {
	tb.Helper()
	email := id + "@example.com"
	first := "Ada"
	u := &types.User{
		ID:        id,
		Email:     &email,
		FirstName: &first,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedCourse inserts a course with a preset enrolled_count, bypassing the repo which
// always starts the counter at zero.
func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, title string, enrolledCount int) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:            uuid.New(),
		Title:         title,
		Description:   "about " + title,
		Category:      "engineering",
		Thumbnail:     "https://cdn.example.com/" + title + ".png",
		Price:         49.99,
		EnrolledCount: enrolledCount,
		Features:      datatypes.NewJSONSlice([]string{"video", "quizzes"}),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, userID string, courseID uuid.UUID, enrolledAt time.Time) *types.Enrollment {
	tb.Helper()
	e := &types.Enrollment{
		ID:         uuid.New(),
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: enrolledAt.UTC(),
	}
	if err := tx.WithContext(ctx).Omit("User", "Course").Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

func SeedTestimonial(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, approved bool) *types.Testimonial {
	tb.Helper()
	t := &types.Testimonial{
		ID:      uuid.New(),
		Name:    name,
		Role:    "Student",
		Content: name + " liked it",
		Rating:  5,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed testimonial: %v", err)
	}
	if approved {
		if err := tx.WithContext(ctx).Model(t).UpdateColumn("is_approved", true).Error; err != nil {
			tb.Fatalf("approve testimonial: %v", err)
		}
		t.IsApproved = true
	}
	return t
}

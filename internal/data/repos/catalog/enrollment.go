package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type EnrollmentRepo interface {
	Create(dbc dbctx.Context, row *types.Enrollment) (*types.Enrollment, error)

	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Enrollment, error)
	GetByUserAndCourse(dbc dbctx.Context, userID string, courseID uuid.UUID) (*types.Enrollment, error)
	ListWithCourseByUser(dbc dbctx.Context, userID string) ([]*types.EnrollmentWithCourse, error)
	Count(dbc dbctx.Context) (int64, error)
	CountByCourse(dbc dbctx.Context, courseID uuid.UUID) (int64, error)

	UpdateProgress(dbc dbctx.Context, id uuid.UUID, progress int, observedAt time.Time) (bool, error)
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return &enrollmentRepo{db: db, log: baseLog.With("repo", "EnrollmentRepo")}
}

// Create inserts a fresh enrollment (progress 0, no completion). A duplicate
// (user_id, course_id) surfaces as the driver's unique violation.
func (r *enrollmentRepo) Create(dbc dbctx.Context, row *types.Enrollment) (*types.Enrollment, error) {
	if row == nil {
		return nil, nil
	}
	if row.EnrolledAt.IsZero() {
		row.EnrolledAt = time.Now().UTC()
	}
	row.Progress = 0
	row.CompletedAt = nil
	if err := dbc.DB(r.db).Omit("User", "Course").Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *enrollmentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Enrollment, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.Enrollment
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// GetByUserAndCourse returns (nil, nil) when the user is not enrolled.
func (r *enrollmentRepo) GetByUserAndCourse(dbc dbctx.Context, userID string, courseID uuid.UUID) (*types.Enrollment, error) {
	if userID == "" || courseID == uuid.Nil {
		return nil, nil
	}
	var rows []*types.Enrollment
	if err := dbc.DB(r.db).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ListWithCourseByUser joins each enrollment to its course, most recent enrollment first.
func (r *enrollmentRepo) ListWithCourseByUser(dbc dbctx.Context, userID string) ([]*types.EnrollmentWithCourse, error) {
	out := []*types.EnrollmentWithCourse{}
	if userID == "" {
		return out, nil
	}
	var enrollments []*types.Enrollment
	if err := dbc.DB(r.db).
		InnerJoins("Course").
		Where("enrollments.user_id = ?", userID).
		Order("enrollments.enrolled_at DESC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}
		row := &types.EnrollmentWithCourse{Enrollment: *e, Course: *e.Course}
		row.Enrollment.Course = nil
		out = append(out, row)
	}
	return out, nil
}

func (r *enrollmentRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Enrollment{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *enrollmentRepo) CountByCourse(dbc dbctx.Context, courseID uuid.UUID) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Enrollment{}).Where("course_id = ?", courseID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// UpdateProgress writes progress in one statement. Reaching 100 stamps completed_at
// unless already set; lower values never clear it.
func (r *enrollmentRepo) UpdateProgress(dbc dbctx.Context, id uuid.UUID, progress int, observedAt time.Time) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	updates := map[string]any{"progress": progress}
	if progress == types.CompleteProgress {
		updates["completed_at"] = gorm.Expr("COALESCE(completed_at, ?)", observedAt.UTC())
	}
	res := dbc.DB(r.db).Model(&types.Enrollment{}).Where("id = ?", id).UpdateColumns(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

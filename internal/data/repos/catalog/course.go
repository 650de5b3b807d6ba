package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type CourseRepo interface {
	Create(dbc dbctx.Context, row *types.Course) (*types.Course, error)

	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Course, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Course, error)
	List(dbc dbctx.Context) ([]*types.Course, error)
	Count(dbc dbctx.Context) (int64, error)

	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]any) (bool, error)
	IncrementEnrolledCount(dbc dbctx.Context, id uuid.UUID, delta int) (int, error)

	Delete(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: db, log: baseLog.With("repo", "CourseRepo")}
}

func (r *courseRepo) Create(dbc dbctx.Context, row *types.Course) (*types.Course, error) {
	if row == nil {
		return nil, nil
	}
	row.EnrolledCount = 0
	if err := dbc.DB(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// GetByID returns (nil, nil) when the course does not exist.
func (r *courseRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Course, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.Course
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// LockByID reads the course row FOR UPDATE. It must run inside a transaction;
// SQLite has no row locks and the clause is dropped there.
func (r *courseRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Course, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.Course
	if err := dbc.DB(r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// List orders by popularity, newest first among ties.
func (r *courseRepo) List(dbc dbctx.Context) ([]*types.Course, error) {
	var out []*types.Course
	if err := dbc.DB(r.db).
		Order("enrolled_count DESC").
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *courseRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.Course{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// UpdateFields applies updates and reports whether a row matched. enrolled_count is
// stripped; only IncrementEnrolledCount moves it.
func (r *courseRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]any) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	clean := make(map[string]any, len(updates))
	for k, v := range updates {
		if k == "enrolled_count" || k == "id" || k == "created_at" {
			continue
		}
		clean[k] = v
	}
	if len(clean) == 0 {
		course, err := r.GetByID(dbc, id)
		return course != nil, err
	}
	res := dbc.DB(r.db).Model(&types.Course{}).Where("id = ?", id).Updates(clean)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IncrementEnrolledCount adds delta in a single UPDATE and returns the new value.
// It returns gorm.ErrRecordNotFound when the course does not exist.
func (r *courseRepo) IncrementEnrolledCount(dbc dbctx.Context, id uuid.UUID, delta int) (int, error) {
	t := dbc.DB(r.db)
	res := t.Model(&types.Course{}).
		Where("id = ?", id).
		UpdateColumn("enrolled_count", gorm.Expr("enrolled_count + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	var count int
	if err := t.Model(&types.Course{}).
		Where("id = ?", id).
		Select("enrolled_count").
		Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes the course; its enrollments go through the foreign key cascade.
func (r *courseRepo) Delete(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&types.Course{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

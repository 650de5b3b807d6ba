package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type TestimonialRepo interface {
	Create(dbc dbctx.Context, row *types.Testimonial) (*types.Testimonial, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Testimonial, error)
	ListApproved(dbc dbctx.Context) ([]*types.Testimonial, error)
	ListAll(dbc dbctx.Context) ([]*types.Testimonial, error)
	SetApproved(dbc dbctx.Context, id uuid.UUID, approved bool) (bool, error)
}

type testimonialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTestimonialRepo(db *gorm.DB, baseLog *logger.Logger) TestimonialRepo {
	return &testimonialRepo{db: db, log: baseLog.With("repo", "TestimonialRepo")}
}

func (r *testimonialRepo) Create(dbc dbctx.Context, row *types.Testimonial) (*types.Testimonial, error) {
	if row == nil {
		return nil, nil
	}
	row.IsApproved = false
	if err := dbc.DB(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *testimonialRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Testimonial, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.Testimonial
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *testimonialRepo) ListApproved(dbc dbctx.Context) ([]*types.Testimonial, error) {
	var out []*types.Testimonial
	if err := dbc.DB(r.db).
		Where("is_approved = ?", true).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *testimonialRepo) ListAll(dbc dbctx.Context) ([]*types.Testimonial, error) {
	var out []*types.Testimonial
	if err := dbc.DB(r.db).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *testimonialRepo) SetApproved(dbc dbctx.Context, id uuid.UUID, approved bool) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	res := dbc.DB(r.db).Model(&types.Testimonial{}).Where("id = ?", id).UpdateColumn("is_approved", approved)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

package user

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type UserRepo interface {
	GetByID(dbc dbctx.Context, id string) (*types.User, error)
	GetByIDs(dbc dbctx.Context, ids []string) ([]*types.User, error)
	Upsert(dbc dbctx.Context, in types.UserUpsert) (*types.User, error)
	Delete(dbc dbctx.Context, id string) (bool, error)
	Count(dbc dbctx.Context) (int64, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) GetByIDs(dbc dbctx.Context, ids []string) ([]*types.User, error) {
	var out []*types.User
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns (nil, nil) when the user does not exist.
func (r *userRepo) GetByID(dbc dbctx.Context, id string) (*types.User, error) {
	if id == "" {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []string{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Upsert inserts the user or merges the provided claims into the existing row, then
// returns the stored row.
func (r *userRepo) Upsert(dbc dbctx.Context, in types.UserUpsert) (*types.User, error) {
	row := in.Record()
	t := dbc.DB(r.db)
	if err := t.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(in.MergeColumns()),
	}).Create(row).Error; err != nil {
		return nil, err
	}
	var stored types.User
	if err := t.Where("id = ?", in.ID).Take(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// Delete removes the user; enrollments go with it through the foreign key cascade.
func (r *userRepo) Delete(dbc dbctx.Context, id string) (bool, error) {
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&types.User{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.User{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

package services

import (
	"context"
	"strings"

	dataagg "github.com/yungbote/coursehub-backend/internal/data/aggregates"
	"github.com/yungbote/coursehub-backend/internal/data/repos"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type UserService interface {
	// Get returns nil when the user does not exist.
	Get(ctx context.Context, id string) (*types.User, error)
	Upsert(ctx context.Context, in types.UserUpsert) (*types.User, error)
}

type userService struct {
	log   *logger.Logger
	users repos.UserRepo
}

func NewUserService(log *logger.Logger, users repos.UserRepo) UserService {
	return &userService{
		log:   log.With("service", "UserService"),
		users: users,
	}
}

func (s *userService) Get(ctx context.Context, id string) (*types.User, error) {
	const op = "UserService.Get"
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	row, err := s.users.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return row, nil
}

func (s *userService) Upsert(ctx context.Context, in types.UserUpsert) (*types.User, error) {
	const op = "UserService.Upsert"
	in.ID = strings.TrimSpace(in.ID)
	if err := types.Validate(op, in); err != nil {
		return nil, err
	}
	row, err := s.users.Upsert(dbctx.Context{Ctx: ctx}, in)
	if err != nil {
		s.log.Warn("user upsert failed", "user_id", in.ID, "error", err)
		return nil, dataagg.MapError(op, err)
	}
	return row, nil
}

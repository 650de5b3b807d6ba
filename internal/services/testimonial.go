package services

import (
	"context"

	"github.com/google/uuid"

	dataagg "github.com/yungbote/coursehub-backend/internal/data/aggregates"
	"github.com/yungbote/coursehub-backend/internal/data/repos"
	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/platform/dbctx"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type TestimonialService interface {
	// Create always stores the testimonial unapproved.
	Create(ctx context.Context, in types.TestimonialInput) (*types.Testimonial, error)
	ListApproved(ctx context.Context) ([]*types.Testimonial, error)
	ListAll(ctx context.Context) ([]*types.Testimonial, error)
	// SetApproval returns nil when the testimonial does not exist.
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*types.Testimonial, error)
}

type testimonialService struct {
	log          *logger.Logger
	testimonials repos.TestimonialRepo
}

func NewTestimonialService(log *logger.Logger, testimonials repos.TestimonialRepo) TestimonialService {
	return &testimonialService{
		log:          log.With("service", "TestimonialService"),
		testimonials: testimonials,
	}
}

func (s *testimonialService) Create(ctx context.Context, in types.TestimonialInput) (*types.Testimonial, error) {
	const op = "TestimonialService.Create"
	if err := types.Validate(op, in); err != nil {
		return nil, err
	}
	row, err := s.testimonials.Create(dbctx.Context{Ctx: ctx}, in.Record())
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return row, nil
}

func (s *testimonialService) ListApproved(ctx context.Context) ([]*types.Testimonial, error) {
	rows, err := s.testimonials.ListApproved(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, dataagg.MapError("TestimonialService.ListApproved", err)
	}
	return rows, nil
}

func (s *testimonialService) ListAll(ctx context.Context) ([]*types.Testimonial, error) {
	rows, err := s.testimonials.ListAll(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, dataagg.MapError("TestimonialService.ListAll", err)
	}
	return rows, nil
}

func (s *testimonialService) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*types.Testimonial, error) {
	const op = "TestimonialService.SetApproval"
	if id == uuid.Nil {
		return nil, nil
	}
	dbc := dbctx.Context{Ctx: ctx}
	found, err := s.testimonials.SetApproved(dbc, id, approved)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if !found {
		return nil, nil
	}
	s.log.Info("testimonial moderated", "testimonial_id", id, "approved", approved)
	row, err := s.testimonials.GetByID(dbc, id)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return row, nil
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/coursehub-backend/internal/domain"
	"github.com/yungbote/coursehub-backend/internal/http/response"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/services"
)

var errTestimonialNotFound = errors.New("testimonial not found")

type TestimonialHandler struct {
	log          *logger.Logger
	testimonials services.TestimonialService
}

func NewTestimonialHandler(log *logger.Logger, testimonials services.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{
		log:          log.With("handler", "TestimonialHandler"),
		testimonials: testimonials,
	}
}

// GET /api/testimonials
func (h *TestimonialHandler) ListApproved(c *gin.Context) {
	rows, err := h.testimonials.ListApproved(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"testimonials": rows})
}

// POST /api/testimonials
func (h *TestimonialHandler) Create(c *gin.Context) {
	var in types.TestimonialInput
	if !bindJSON(c, &in) {
		return
	}
	row, err := h.testimonials.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"testimonial": row})
}

// GET /api/admin/testimonials
func (h *TestimonialHandler) ListAll(c *gin.Context) {
	rows, err := h.testimonials.ListAll(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"testimonials": rows})
}

type approvalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// PATCH /api/admin/testimonials/:id/approval
// body: { "approved": true|false }
func (h *TestimonialHandler) SetApproval(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req approvalRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.testimonials.SetApproval(c.Request.Context(), id, *req.Approved)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if row == nil {
		response.RespondError(c, http.StatusNotFound, "testimonial_not_found", errTestimonialNotFound)
		return
	}
	response.RespondOK(c, gin.H{"testimonial": row})
}

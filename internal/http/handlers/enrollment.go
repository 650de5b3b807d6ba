package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursehub-backend/internal/http/response"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/services"
)

var errEnrollmentNotFound = errors.New("enrollment not found")

type EnrollmentHandler struct {
	log         *logger.Logger
	enrollments services.EnrollmentService
}

func NewEnrollmentHandler(log *logger.Logger, enrollments services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		log:         log.With("handler", "EnrollmentHandler"),
		enrollments: enrollments,
	}
}

// GET /api/enrollments
func (h *EnrollmentHandler) ListMyEnrollments(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	rows, err := h.enrollments.GetEnrollments(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("ListMyEnrollments failed", "error", err, "user_id", userID)
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"enrollments": rows})
}

// POST /api/courses/:id/enroll
// 201 when this call enrolled the caller, 200 when the enrollment already existed.
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	row, created, err := h.enrollments.EnrollIfAbsent(c.Request.Context(), userID, courseID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if created {
		response.RespondCreated(c, gin.H{"enrollment": row})
		return
	}
	response.RespondOK(c, gin.H{"enrollment": row})
}

// GET /api/courses/:id/enrollment
// Responds {"enrollment": null} when the caller is not enrolled.
func (h *EnrollmentHandler) GetMyEnrollment(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	row, err := h.enrollments.GetByCourse(c.Request.Context(), userID, courseID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"enrollment": row})
}

type progressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// PATCH /api/enrollments/:id/progress
// body: { "progress": 0..100 }
func (h *EnrollmentHandler) UpdateProgress(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req progressRequest
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.enrollments.UpdateProgress(c.Request.Context(), id, *req.Progress)
	if errors.Is(err, services.ErrNotEnrollmentOwner) {
		response.RespondError(c, http.StatusForbidden, "forbidden", err)
		return
	}
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if row == nil {
		response.RespondError(c, http.StatusNotFound, "enrollment_not_found", errEnrollmentNotFound)
		return
	}
	response.RespondOK(c, gin.H{"enrollment": row})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursehub-backend/internal/http/response"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
	"github.com/yungbote/coursehub-backend/internal/services"
)

type AdminHandler struct {
	log   *logger.Logger
	stats services.StatsService
}

func NewAdminHandler(log *logger.Logger, stats services.StatsService) *AdminHandler {
	return &AdminHandler{
		log:   log.With("handler", "AdminHandler"),
		stats: stats,
	}
}

// GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.stats.AdminStats(c.Request.Context())
	if err != nil {
		h.log.Error("AdminStats failed", "error", err)
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"stats": stats})
}

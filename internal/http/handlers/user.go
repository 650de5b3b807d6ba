package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursehub-backend/internal/http/response"
	"github.com/yungbote/coursehub-backend/internal/services"
)

var errUserNotFound = errors.New("user not found")

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/auth/user
func (uh *UserHandler) GetMe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	me, err := uh.userService.Get(c.Request.Context(), userID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if me == nil {
		response.RespondError(c, http.StatusNotFound, "user_not_found", errUserNotFound)
		return
	}
	response.RespondOK(c, gin.H{"user": me})
}

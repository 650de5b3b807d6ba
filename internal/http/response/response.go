package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursehub-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError maps a coded service error onto its HTTP status. The body carries
// only apierr's public message, and internal failures never carry their cause.
func RespondAPIError(c *gin.Context, err error) {
	apiErr := apierr.FromError(err)
	if apiErr == nil {
		RespondError(c, http.StatusInternalServerError, "internal", nil)
		return
	}
	if apiErr.Status >= http.StatusInternalServerError && apiErr.Status != http.StatusServiceUnavailable {
		c.JSON(apiErr.Status, ErrorEnvelope{Error: APIError{Message: "internal error", Code: apiErr.Code}})
		return
	}
	c.JSON(apiErr.Status, ErrorEnvelope{Error: APIError{Message: apiErr.PublicMessage(), Code: apiErr.Code}})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	domainagg "github.com/yungbote/coursehub-backend/internal/domain/aggregates"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

var publicMessages = map[domainagg.ErrorCode]string{
	domainagg.CodeValidation:         "invalid request",
	domainagg.CodeNotFound:           "referenced resource not found",
	domainagg.CodePreconditionFailed: "referenced resource not found",
	domainagg.CodeConflict:           "resource already exists",
	domainagg.CodeRetryable:          "temporarily unavailable, retry later",
	domainagg.CodeInvariantViolation: "request could not be applied consistently",
	domainagg.CodeInternal:           "internal error",
}

// PublicMessage is the text safe to send to clients. Coded errors get a fixed
// text per code, except validation errors which keep their own message; store
// and driver text never leaves the process. Uncoded errors are transport errors
// built by handlers and keep their text.
func (e *Error) PublicMessage() string {
	if e == nil {
		return ""
	}
	code := domainagg.CodeOf(e.Err)
	if code == "" {
		return e.Error()
	}
	if code == domainagg.CodeValidation {
		if msg := strings.TrimSpace(domainagg.Message(e.Err)); msg != "" {
			return strings.ReplaceAll(msg, "\n", ": ")
		}
	}
	if msg, ok := publicMessages[code]; ok {
		return msg
	}
	return "internal error"
}

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromError maps an aggregate-coded error onto an HTTP status and wire code.
// Errors that are already *Error pass through; uncoded errors become 500s.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch domainagg.CodeOf(err) {
	case domainagg.CodeValidation:
		return New(http.StatusBadRequest, string(domainagg.CodeValidation), err)
	case domainagg.CodeNotFound, domainagg.CodePreconditionFailed:
		return New(http.StatusNotFound, string(domainagg.CodeNotFound), err)
	case domainagg.CodeConflict:
		return New(http.StatusConflict, string(domainagg.CodeConflict), err)
	case domainagg.CodeRetryable:
		return New(http.StatusServiceUnavailable, string(domainagg.CodeRetryable), err)
	case domainagg.CodeInvariantViolation:
		return New(http.StatusUnprocessableEntity, string(domainagg.CodeInvariantViolation), err)
	default:
		return New(http.StatusInternalServerError, "internal", err)
	}
}

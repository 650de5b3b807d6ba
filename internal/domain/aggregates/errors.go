package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a failed write; the HTTP layer maps each code to one status.
type ErrorCode string

const (
	CodeValidation         ErrorCode = "validation"
	CodeNotFound           ErrorCode = "not_found"
	CodeConflict           ErrorCode = "conflict"
	CodeInvariantViolation ErrorCode = "invariant_violation"
	CodePreconditionFailed ErrorCode = "precondition_failed"
	CodeRetryable          ErrorCode = "retryable"
	CodeInternal           ErrorCode = "internal"
)

// Error carries the code, the operation that failed and the underlying cause.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap is NewError using err's text as the message. A nil err stays nil.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

func IsCode(err error, code ErrorCode) bool {
	return code != "" && CodeOf(err) == code
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if aggErr := asError(err); aggErr != nil {
		return aggErr.Code
	}
	return ""
}

func IsNotFound(err error) bool   { return IsCode(err, CodeNotFound) }
func IsConflict(err error) bool   { return IsCode(err, CodeConflict) }
func IsValidation(err error) bool { return IsCode(err, CodeValidation) }
func IsRetryable(err error) bool  { return IsCode(err, CodeRetryable) }
func IsInvariantViolation(err error) bool {
	return IsCode(err, CodeInvariantViolation)
}

// Message returns the client-facing message of a coded error, or "" for plain errors.
func Message(err error) string {
	if aggErr := asError(err); aggErr != nil {
		return aggErr.Message
	}
	return ""
}

func asError(err error) *Error {
	var aggErr *Error
	if errors.As(err, &aggErr) {
		return aggErr
	}
	return nil
}

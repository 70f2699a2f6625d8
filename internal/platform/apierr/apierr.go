package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	CodeValidation      = "validation_error"
	CodeUnauthorized    = "unauthorized"
	CodeForbidden       = "forbidden"
	CodeInvalidToken    = "invalid_token"
	CodeNotFound        = "not_found"
	CodeConflict        = "conflict"
	CodeOperationFailed = "operation_failed"
)

// Error is an application error carrying the HTTP status and the message that
// is safe to show to clients. Err holds the underlying cause, if any.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
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

func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: msg}
}

// Forbidden reports a role failure. The status is 401; only the code differs
// from Unauthorized.
func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: CodeForbidden, Message: msg}
}

func InvalidToken() *Error {
	return &Error{Status: http.StatusUnauthorized, Code: CodeInvalidToken, Message: "invalid token"}
}

func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeConflict, Message: msg}
}

// OperationFailed wraps an unexpected failure. The cause message is appended
// to msg so the client sees why the operation did not complete.
func OperationFailed(msg string, cause error) *Error {
	full := strings.TrimSpace(msg)
	if cause != nil {
		full = fmt.Sprintf("%s: %s", full, cause.Error())
	}
	return &Error{Status: http.StatusInternalServerError, Code: CodeOperationFailed, Message: full, Err: cause}
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr, true
	}
	return nil, false
}

// StatusOf returns the HTTP status for err, 500 when err is not an *Error.
func StatusOf(err error) int {
	if apiErr, ok := As(err); ok && apiErr.Status != 0 {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

func IsCode(err error, code string) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Code == code
}

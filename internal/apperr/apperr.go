// Package apperr carries the structured error taxonomy every handler maps to
// at its boundary before responding.
package apperr

import (
	"errors"
	"net/http"
)

type Code string

const (
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodePermissionDenied   Code = "PERMISSION_DENIED"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
)

// Error is a caller-visible error: a taxonomy code plus a message safe to
// surface verbatim in the UI.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Unauthenticated(message string) *Error    { return New(CodeUnauthenticated, message) }
func InvalidArgument(message string) *Error    { return New(CodeInvalidArgument, message) }
func NotFound(message string) *Error           { return New(CodeNotFound, message) }
func PermissionDenied(message string) *Error   { return New(CodePermissionDenied, message) }
func FailedPrecondition(message string) *Error { return New(CodeFailedPrecondition, message) }
func Internal(message string) *Error           { return New(CodeInternal, message) }

// From passes structured errors through untouched and collapses everything
// else to INTERNAL with a generic message; the original detail stays in
// server logs only.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error")
}

func HTTPStatus(code Code) int {
	switch code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeFailedPrecondition:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

// Package apperrors defines the error classes the API answers with.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is an error that knows which HTTP status it maps to.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Is matches on Code so wrapped copies still compare equal to the sentinels.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy of the error with a custom message.
func (e *APIError) WithMessage(message string) *APIError {
	return &APIError{
		Code:       e.Code,
		Message:    message,
		StatusCode: e.StatusCode,
	}
}

var (
	ErrBadRequest = &APIError{
		Code:       "bad_request",
		Message:    "Invalid request",
		StatusCode: http.StatusBadRequest,
	}

	// ErrInvalidCredential covers missing, unknown and expired credentials.
	ErrInvalidCredential = &APIError{
		Code:       "invalid_credential",
		Message:    "Invalid credential",
		StatusCode: http.StatusUnauthorized,
	}

	// ErrUnauthorizedAction is returned when the caller's identity does not
	// own the resource it tries to modify.
	ErrUnauthorizedAction = &APIError{
		Code:       "unauthorized_action",
		Message:    "Unauthorized action",
		StatusCode: http.StatusForbidden,
	}

	// ErrResourceIDRequired is returned for a DELETE without a resource id.
	ErrResourceIDRequired = &APIError{
		Code:       "resource_id_required",
		Message:    "A resource id is required for this action",
		StatusCode: http.StatusForbidden,
	}

	ErrNotFound = &APIError{
		Code:       "not_found",
		Message:    "Resource not found",
		StatusCode: http.StatusNotFound,
	}

	ErrInternal = &APIError{
		Code:       "internal_error",
		Message:    "Internal server error",
		StatusCode: http.StatusInternalServerError,
	}
)

// BadRequest builds a client input error.
func BadRequest(format string, args ...any) *APIError {
	return ErrBadRequest.WithMessage(fmt.Sprintf(format, args...))
}

// NotFound builds a not found error for the named resource.
func NotFound(resource string) *APIError {
	return ErrNotFound.WithMessage(resource + " not found")
}

// As returns the APIError carried by err, or ErrInternal when err carries none.
func As(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return ErrInternal
}

// IsClientError reports whether err maps to a 4xx status.
func IsClientError(err error) bool {
	status := As(err).StatusCode
	return status >= 400 && status < 500
}

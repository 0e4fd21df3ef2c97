package model

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an error returned by the competition backend.
type ErrorCode string

const (
	ErrValidation   ErrorCode = "VALIDATION_ERROR"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrForbidden    ErrorCode = "FORBIDDEN"
	ErrTransport    ErrorCode = "TRANSPORT_ERROR"
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
)

// Sentinel errors for the two auth failure classes. A 401 means the
// credential itself is invalid (force re-login); a 403 means the credential
// is structurally fine but the access window is closed (force the terminal
// page).
var (
	ErrInvalidCredentials = errors.New("credentials invalid or expired")
	ErrWindowClosed       = errors.New("competition window closed")
)

// APIError is a structured error from the competition backend.
type APIError struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"-"` // HTTP status that produced this error
	Details []FieldError `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap maps the auth error codes onto the sentinel errors so callers can
// use errors.Is without inspecting HTTP statuses.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case ErrUnauthorized:
		return ErrInvalidCredentials
	case ErrForbidden:
		return ErrWindowClosed
	}
	return nil
}

// FieldError describes a validation error on a specific form field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NewValidationError creates an APIError with validation details.
func NewValidationError(msg string, details ...FieldError) *APIError {
	return &APIError{Code: ErrValidation, Message: msg, Details: details}
}

// NewNotFoundError creates a NOT_FOUND APIError.
func NewNotFoundError(resource, id string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s '%s' not found", resource, id),
	}
}

package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"document-viewer/internal/domain"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeOutOfRange   ErrorType = "out_of_range"
	ErrorTypeInternal     ErrorType = "internal"
	ErrorTypeNetwork      ErrorType = "network"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewConflictError reports an operation the session cannot take in its
// current state.
func NewConflictError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
		Cause:      cause,
	}
}

// NewOutOfRangeError reports a navigation target outside the document.
func NewOutOfRangeError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeOutOfRange,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// FromDomain maps a viewer error to its AppError. Errors that already are
// an AppError pass through unchanged.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	var vErr *domain.ValidationError
	if stderrors.As(err, &vErr) {
		e := NewValidationError(vErr.Error())
		e.Cause = err
		return e
	}

	switch {
	case stderrors.Is(err, domain.ErrOutOfRange):
		return NewOutOfRangeError("Location is outside the document", err)
	case stderrors.Is(err, domain.ErrSessionNotFound):
		return NewNotFoundError("Session not found")
	case stderrors.Is(err, domain.ErrBookmarkNotFound):
		return NewNotFoundError("Bookmark not found")
	case stderrors.Is(err, domain.ErrAccessDenied):
		return NewForbiddenError("Access denied")
	case stderrors.Is(err, domain.ErrSessionClosed):
		return NewConflictError("Session is closed", err)
	case stderrors.Is(err, domain.ErrNotReady):
		return NewConflictError("Document is not ready", err)
	case stderrors.Is(err, domain.ErrFallbackUnavailable):
		return NewConflictError("Fallback viewer unavailable", err)
	case stderrors.Is(err, domain.ErrInvalidToken), stderrors.Is(err, domain.ErrUserNotFound):
		return NewUnauthorizedError("Invalid token")
	case stderrors.Is(err, domain.ErrInvalidTarget),
		stderrors.Is(err, domain.ErrInvalidRotation),
		stderrors.Is(err, domain.ErrInvalidMetrics),
		stderrors.Is(err, domain.ErrInvalidFitMode):
		e := NewValidationError(err.Error())
		e.Cause = err
		return e
	}
	return NewInternalError("Internal server error", err)
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

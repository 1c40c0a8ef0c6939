package domain

import "errors"

// Domain errors
var (
	ErrOutOfRange          = errors.New("location out of range")
	ErrInvalidTarget       = errors.New("invalid navigation target")
	ErrNotReady            = errors.New("session not ready")
	ErrSessionClosed       = errors.New("session closed")
	ErrInvalidRotation     = errors.New("rotation must be a multiple of 90 degrees")
	ErrInvalidMetrics      = errors.New("invalid layout metrics")
	ErrInvalidFitMode      = errors.New("invalid fit mode")
	ErrSessionNotFound     = errors.New("session not found")
	ErrAccessDenied        = errors.New("access denied")
	ErrBookmarkNotFound    = errors.New("bookmark not found")
	ErrFallbackUnavailable = errors.New("fallback viewer unavailable")
	ErrInvalidToken        = errors.New("invalid token")
	ErrUserNotFound        = errors.New("user not found")
)

// LoadError is a failure of the primary renderer. It is recovered by retry.
type LoadError struct {
	Attempt int
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause == nil {
		return "primary render failed"
	}
	return "primary render failed: " + e.Cause.Error()
}

func (e *LoadError) Unwrap() error { return e.Cause }

// FallbackError means the degraded path cannot show the document either.
// It is terminal and surfaced to the user.
type FallbackError struct {
	SourceURI string
	Cause     error
}

func (e *FallbackError) Error() string {
	msg := "fallback viewer unavailable for " + e.SourceURI
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FallbackError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrFallbackUnavailable}
	}
	return []error{ErrFallbackUnavailable, e.Cause}
}

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

package errors

import (
	"errors"
	"fmt"
)

// Common error types for the admin console
var (
	// Input errors, raised before any backend request is made
	ErrValidation = errors.New("validation failed")

	// Backend errors
	ErrNetwork         = errors.New("network error")
	ErrBackendRejected = errors.New("backend rejected request")

	// Token errors
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")

	// Authorization errors
	ErrInsufficientPrivileges = errors.New("insufficient privileges")
	ErrAccessDenied           = errors.New("access denied")
	ErrForbiddenAction        = errors.New("action not permitted")

	// Flow errors
	ErrFlowState          = errors.New("flow step out of order")
	ErrDeleteNotConfirmed = errors.New("delete has not been confirmed")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	// General errors
	ErrNotFound = errors.New("not found")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New creates a plain error value
func New(text string) error {
	return errors.New(text)
}

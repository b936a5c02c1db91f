package errors

import (
	"errors"
	"fmt"
)

// Common error types for the prompt share front-end
var (
	// Login callback errors
	ErrMissingCode     = errors.New("missing authorization code")
	ErrUnknownProvider = errors.New("unknown provider")
	ErrInvalidState    = errors.New("invalid state")
	ErrExchangeFailed  = errors.New("token exchange failed")
	ErrProfileFailed   = errors.New("profile fetch failed")

	// Session errors
	ErrUnauthenticated = errors.New("unauthenticated")

	// Form errors
	ErrRequiredFields = errors.New("required fields missing")

	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
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

// Join combines errors, see errors.Join
func Join(errs ...error) error {
	return errors.Join(errs...)
}

package errors

import (
	"errors"
	"fmt"
)

var (
	// Login flow errors
	ErrInvalidState = errors.New("invalid oauth state")
	ErrIdentity     = errors.New("identity provider failure")

	// Store errors
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrNotFound         = errors.New("not found")

	// Request errors
	ErrValidation = errors.New("validation failed")

	// Background errors
	ErrDispatch = errors.New("notification dispatch failed")

	// General errors
	ErrNotConfigured = errors.New("not configured")
	ErrInternal      = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Mark attaches a sentinel to err so callers can test for it with Is while
// the original error stays in the chain.
func Mark(err, sentinel error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Package common provides shared constants, types, and utilities
// used across the Save State application.
package common

import "errors"

// Sentinel errors for state and application operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// State document errors.
	ErrStateRead    = errors.New("failed to read state file")
	ErrStateParse   = errors.New("failed to parse state file")
	ErrStateWrite   = errors.New("failed to write state file")
	ErrInvalidState = errors.New("invalid run state")

	// History errors.
	ErrHistory = errors.New("history journal error")

	// UI errors.
	ErrLayout = errors.New("invalid layout")

	// Configuration errors.
	ErrConfigLoad = errors.New("failed to load configuration")
	ErrConfigSave = errors.New("failed to save configuration")

	// ErrConfigFallback is returned when saving defaults that replaced an
	// unreadable config file.
	ErrConfigFallback = errors.New("configuration file could not be loaded, not overwriting it")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}

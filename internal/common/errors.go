// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Cell-level parse errors. Callers skip the offending row and continue.
	ErrDateParse   = errors.New("unparseable date cell")
	ErrAmountParse = errors.New("unparseable amount cell")

	// Sheet-level errors.
	ErrHeaderNotFound = errors.New("header row not found")
	ErrMissingSheet   = errors.New("sheet not found")
	ErrEmptySheet     = errors.New("sheet has no rows")

	// Configuration errors. Fatal at startup.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRowError reports whether an error is a per-row data quality issue
// that should be logged and skipped rather than aborting the batch.
func IsRowError(err error) bool {
	return errors.Is(err, ErrDateParse) || errors.Is(err, ErrAmountParse)
}

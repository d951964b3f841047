// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound       = errors.New("not found")
	ErrStoreCorrupted = errors.New("stored data corrupted")
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrStoreClosed    = errors.New("store closed")

	// Bank link errors.
	ErrBankConnection = errors.New("bank connection failed")
	ErrBankRateLimit  = errors.New("bank rate limit exceeded")
	ErrNotConnected   = errors.New("no bank accounts connected")

	// Budget errors.
	ErrUnknownCategory    = errors.New("unknown category")
	ErrUnknownTransaction = errors.New("unknown transaction")
	ErrUnknownGoal        = errors.New("unknown goal")

	// Training errors.
	ErrInsufficientTrainingData = errors.New("not enough categorized transactions to train")

	// Configuration errors.
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

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, ErrBankRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}

// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Validation errors.
	ErrValidation         = errors.New("validation failed")
	ErrMissingContractEnd = fmt.Errorf("%w: 계약만기시기를 선택해주세요", ErrValidation)
	ErrNoDistrict         = fmt.Errorf("%w: 최소 1개 이상의 시군구를 선택해주세요", ErrValidation)
	ErrQueryTooShort      = fmt.Errorf("%w: 검색어는 최소 2글자 이상 입력해주세요", ErrValidation)

	// State errors.
	ErrBusy = errors.New("a request is already in flight")

	// Backend errors.
	ErrTransport = errors.New("transport failure")
	ErrAPI       = errors.New("api error")
	ErrNotFound  = errors.New("not found")

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
	if errors.Is(err, ErrValidation) || errors.Is(err, context.Canceled) {
		return false
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return errors.Is(err, ErrTransport) || errors.Is(err, context.DeadlineExceeded)
}

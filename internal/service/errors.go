package service

import (
	"errors"
	"fmt"
)

// ErrNilDependency is returned by constructors when a required dependency is missing.
var ErrNilDependency = errors.New("required dependency is nil")

// Public messages attached to card failures.
const (
	msgCardNull         = "Card cannot be null"
	msgCardNotFound     = "card not found"
	msgDomainValidation = "card failed validation"
)

// CardServiceError is a custom error type for card service errors. It is the
// cause carried by Unhandled and ServiceUnavailable failures.
type CardServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for CardServiceError.
func (e *CardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("card service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("card service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CardServiceError) Unwrap() error {
	return e.Err
}

// NewCardServiceError creates a new CardServiceError.
func NewCardServiceError(operation, message string, err error) *CardServiceError {
	return &CardServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

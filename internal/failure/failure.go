// Package failure defines the closed set of error kinds that may leave the
// service layer. Every failed operation carries exactly one *Failure.
package failure

import (
	"fmt"
	"net/http"
)

// Kind identifies one case of the error taxonomy.
type Kind int

const (
	// KindInvalidInput means the caller supplied an absent entity where one was required.
	KindInvalidInput Kind = iota + 1

	// KindDomainValidation means the entity failed its field-level business rules.
	KindDomainValidation

	// KindNotFound means the referenced id does not exist in storage.
	KindNotFound

	// KindServiceUnavailable means the read path failed in the infrastructure.
	KindServiceUnavailable

	// KindUnhandled wraps any other error or panic caught at the service boundary.
	KindUnhandled
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindDomainValidation:
		return "domain_validation"
	case KindNotFound:
		return "not_found"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindUnhandled:
		return "unhandled"
	default:
		return "unknown"
	}
}

// DefaultCode returns the numeric status code a kind maps to when the failure
// does not declare its own.
func (k Kind) DefaultCode() int {
	switch k {
	case KindInvalidInput, KindDomainValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Failure is a single error from the taxonomy.
type Failure struct {
	Kind    Kind
	Message string
	// Code overrides Kind.DefaultCode when non-zero.
	Code int
	// Fields is only set for KindDomainValidation and holds the validator's
	// field-to-messages mapping verbatim.
	Fields map[string][]string
	Cause  error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Cause)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Unwrap returns the underlying cause to support errors.Is/errors.As.
func (f *Failure) Unwrap() error {
	return f.Cause
}

// StatusCode returns the declared code or the kind's default.
func (f *Failure) StatusCode() int {
	if f.Code != 0 {
		return f.Code
	}
	return f.Kind.DefaultCode()
}

// PublicMessage returns the message that is safe to show to a client.
// Infrastructure failures never expose their internal message.
func (f *Failure) PublicMessage() string {
	switch f.Kind {
	case KindUnhandled:
		return "An unexpected error occurred"
	case KindServiceUnavailable:
		return "Service temporarily unavailable"
	default:
		return f.Message
	}
}

// Is reports whether target is a *Failure of the same kind, so callers can
// write errors.Is(err, &failure.Failure{Kind: failure.KindNotFound}).
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	if !ok {
		return false
	}
	return t.Kind == f.Kind
}

// InvalidInput builds a KindInvalidInput failure.
func InvalidInput(message string) *Failure {
	return &Failure{Kind: KindInvalidInput, Message: message}
}

// DomainValidation builds a KindDomainValidation failure carrying fields.
func DomainValidation(message string, fields map[string][]string) *Failure {
	return &Failure{Kind: KindDomainValidation, Message: message, Fields: fields}
}

// NotFound builds a KindNotFound failure.
func NotFound(message string) *Failure {
	return &Failure{Kind: KindNotFound, Message: message}
}

// ServiceUnavailable builds a KindServiceUnavailable failure wrapping cause.
func ServiceUnavailable(message string, cause error) *Failure {
	return &Failure{Kind: KindServiceUnavailable, Message: message, Cause: cause}
}

// Unhandled builds a KindUnhandled failure wrapping cause.
func Unhandled(message string, cause error) *Failure {
	return &Failure{Kind: KindUnhandled, Message: message, Cause: cause}
}

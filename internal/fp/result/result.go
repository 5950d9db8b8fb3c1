// Package result provides the success-or-failure outcome returned by every
// service operation. A failure always carries one *failure.Failure.
package result

import (
	"github.com/aesirglt/AdaTech/internal/failure"
)

// Done is the valueless success marker.
type Done struct {
	Success bool `json:"success"`
}

// Success is the Done value to return from operations with no payload.
var Success = Done{Success: true}

// Result holds either a value of type T or a failure.
type Result[T any] struct {
	value T
	err   *failure.Failure
}

// Succeed wraps value as a success.
func Succeed[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail wraps f as a failure. A nil f is treated as an unhandled failure so a
// Result built by Fail is never a success.
func Fail[T any](f *failure.Failure) Result[T] {
	if f == nil {
		f = failure.Unhandled("nil failure", nil)
	}
	return Result[T]{err: f}
}

// IsSuccess reports whether the Result holds a value.
func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// IsFailure reports whether the Result holds a failure.
func (r Result[T]) IsFailure() bool {
	return r.err != nil
}

// OnSuccess runs fn with the value on success and returns r unchanged.
func (r Result[T]) OnSuccess(fn func(T)) Result[T] {
	if r.err == nil {
		fn(r.value)
	}
	return r
}

// OnFailure runs fn with the failure and returns r unchanged.
func (r Result[T]) OnFailure(fn func(*failure.Failure)) Result[T] {
	if r.err != nil {
		fn(r.err)
	}
	return r
}

// Match runs exactly one branch and returns its result.
func Match[T, R any](r Result[T], onSuccess func(T) R, onFailure func(*failure.Failure) R) R {
	if r.err == nil {
		return onSuccess(r.value)
	}
	return onFailure(r.err)
}

// Map transforms a success value and forwards failures unchanged.
func Map[T, R any](r Result[T], fn func(T) R) Result[R] {
	if r.err != nil {
		return Fail[R](r.err)
	}
	return Succeed(fn(r.value))
}

// Bind sequences a step that can itself fail.
func Bind[T, R any](r Result[T], fn func(T) Result[R]) Result[R] {
	if r.err != nil {
		return Fail[R](r.err)
	}
	return fn(r.value)
}

// Package choice provides an errors-or-value sum type used for validation
// outcomes before a write reaches storage.
package choice

// Choice holds either an errors value E or a value T, never both.
// Build one with FromErrors or FromValue; the zero value is a value case
// holding T's zero value.
type Choice[E, T any] struct {
	errors   E
	value    T
	isErrors bool
}

// FromErrors wraps errs as the errors case.
func FromErrors[E, T any](errs E) Choice[E, T] {
	return Choice[E, T]{errors: errs, isErrors: true}
}

// FromValue wraps value as the value case.
func FromValue[E, T any](value T) Choice[E, T] {
	return Choice[E, T]{value: value}
}

// IsErrors reports whether the Choice holds errors.
func (c Choice[E, T]) IsErrors() bool {
	return c.isErrors
}

// IsValue reports whether the Choice holds a value.
func (c Choice[E, T]) IsValue() bool {
	return !c.isErrors
}

// ThenErrors runs fn with the errors when present and returns c unchanged.
func (c Choice[E, T]) ThenErrors(fn func(E)) Choice[E, T] {
	if c.isErrors {
		fn(c.errors)
	}
	return c
}

// ThenValue runs fn with the value when present and returns c unchanged.
func (c Choice[E, T]) ThenValue(fn func(T)) Choice[E, T] {
	if !c.isErrors {
		fn(c.value)
	}
	return c
}

// Match runs exactly one branch and returns its result.
func Match[E, T, R any](c Choice[E, T], onErrors func(E) R, onValue func(T) R) R {
	if c.isErrors {
		return onErrors(c.errors)
	}
	return onValue(c.value)
}

// MatchE is Match for branches that can fail.
func MatchE[E, T, R any](c Choice[E, T], onErrors func(E) (R, error), onValue func(T) (R, error)) (R, error) {
	if c.isErrors {
		return onErrors(c.errors)
	}
	return onValue(c.value)
}

// Bind sequences a value-producing step, short-circuiting on errors.
func Bind[E, T, R any](c Choice[E, T], fn func(T) Choice[E, R]) Choice[E, R] {
	if c.isErrors {
		return FromErrors[E, R](c.errors)
	}
	return fn(c.value)
}

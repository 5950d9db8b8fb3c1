// Package option provides a present-or-absent container used wherever a
// lookup may legitimately find nothing. Absence is a value, never nil.
package option

// Option holds either exactly one value of type T or nothing.
// The zero value is None.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps value as a present Option.
func Some[T any](value T) Option[T] {
	return Option[T]{value: value, ok: true}
}

// None returns an absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPtr treats a nil pointer as None and otherwise copies the pointee.
func FromPtr[T any](ptr *T) Option[T] {
	if ptr == nil {
		return None[T]()
	}
	return Some(*ptr)
}

// IsSome reports whether the Option holds a value.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the Option is empty.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// Match runs exactly one of the branches and returns its result.
func Match[T, R any](o Option[T], onSome func(T) R, onNone func() R) R {
	if o.ok {
		return onSome(o.value)
	}
	return onNone()
}

// MatchE is Match for branches that can fail, typically because they reach
// storage. Only the selected branch runs.
func MatchE[T, R any](o Option[T], onSome func(T) (R, error), onNone func() (R, error)) (R, error) {
	if o.ok {
		return onSome(o.value)
	}
	return onNone()
}

// Then runs fn with the value when present and returns o unchanged.
func (o Option[T]) Then(fn func(T)) Option[T] {
	if o.ok {
		fn(o.value)
	}
	return o
}

// Map transforms the held value, keeping absence as is.
func Map[T, R any](o Option[T], fn func(T) R) Option[R] {
	if o.ok {
		return Some(fn(o.value))
	}
	return None[R]()
}

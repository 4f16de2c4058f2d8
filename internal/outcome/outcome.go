// Package outcome provides a two-variant result type used by the sync core
// instead of letting errors escape across layer boundaries. Every operation
// that touches the remote side returns an Outcome; callers branch on IsOk.
package outcome

// Outcome holds either a value or an error, never both.
// The zero value is a success carrying the zero value of T.
type Outcome[T any] struct {
	value T
	err   error
}

// Ok returns a success outcome carrying v.
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

// Err returns a failure outcome carrying err.
func Err[T any](err error) Outcome[T] {
	return Outcome[T]{err: err}
}

// IsOk reports whether the outcome is a success.
func (o Outcome[T]) IsOk() bool {
	return o.err == nil
}

// Value returns the carried value. For failures it returns the zero value of T.
func (o Outcome[T]) Value() T {
	return o.value
}

// Err returns the carried error, nil for successes.
func (o Outcome[T]) Err() error {
	return o.err
}

// Unpack returns the value and the error as an ordinary Go pair.
func (o Outcome[T]) Unpack() (T, error) {
	return o.value, o.err
}

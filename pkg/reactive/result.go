package reactive

// Void is the value type of results that carry no value.
type Void struct{}

// Result is the outcome of reading or writing a reactive: either a value or a
// *UserError.
type Result[T any] struct {
	value T
	err   *UserError
}

// Ok returns a successful result.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err returns a failed result. err is wrapped in a *UserError unless it
// already is one.
func Err[T any](err error) Result[T] {
	return Result[T]{err: userError(err)}
}

// IsOk reports whether the result holds a value.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// IsErr reports whether the result holds an error.
func (r Result[T]) IsErr() bool {
	return r.err != nil
}

// Value returns the value, or the zero value for a failed result.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the error, or nil for a successful result.
func (r Result[T]) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// UserError returns the error as a *UserError, or nil.
func (r Result[T]) UserError() *UserError {
	return r.err
}

// Get returns the value and error in Go's usual two-value form.
func (r Result[T]) Get() (T, error) {
	return r.value, r.Err()
}

// MapResult applies fn to the value of a successful result. Failed results
// are passed through without calling fn.
func MapResult[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return Ok(fn(r.value))
}

// AndThen chains a result-returning step onto a successful result.
func AndThen[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return fn(r.value)
}

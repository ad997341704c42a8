package reactive

// InfallibleFormula creates a memoized computation over trusted code. A panic
// in compute is a bug and propagates out of Read.
func InfallibleFormula[T any](compute func() T) *Reactive[T] {
	if compute == nil {
		panic("reactive: InfallibleFormula requires a compute function")
	}
	return newReactive[T](&infallibleFormula[T]{compute: compute})
}

// FallibleFormula creates a memoized computation over user code. Returned
// errors and panics are caught and stored on the reactive.
func FallibleFormula[T any](compute func() (T, error)) *Reactive[T] {
	if compute == nil {
		panic("reactive: FallibleFormula requires a compute function")
	}
	return newReactive[T](&fallibleFormula[T]{compute: func() Result[T] {
		v, err := compute()
		if err != nil {
			return Err[T](err)
		}
		return Ok(v)
	}})
}

// ResultFormula is FallibleFormula for computations that already produce a
// Result, typically by composing reads of other reactives.
func ResultFormula[T any](compute func() Result[T]) *Reactive[T] {
	if compute == nil {
		panic("reactive: ResultFormula requires a compute function")
	}
	return newReactive[T](&fallibleFormula[T]{compute: compute})
}

// ToReadonly wraps r as a read-only formula. Writing the wrapper fails even
// when r accepts writes.
func ToReadonly[T any](r *Reactive[T]) *Reactive[T] {
	return ResultFormula(func() Result[T] {
		return Read(r)
	})
}

package reactive

// Accessor creates a reactive backed by a custom get/set pair. Errors and
// panics from get are stored like a FallibleFormula's; errors and panics from
// set are stored on the reactive and returned by Write.
func Accessor[T any](get func() (T, error), set func(T) error) *Reactive[T] {
	if get == nil || set == nil {
		panic("reactive: Accessor requires both get and set")
	}
	return newReactive[T](&accessor[T]{
		get: func() Result[T] {
			v, err := get()
			if err != nil {
				return Err[T](err)
			}
			return Ok(v)
		},
		set: func(v T) error {
			if err := set(v); err != nil {
				return userError(err)
			}
			return nil
		},
	})
}

// ResultAccessor is Accessor for get/set functions that already produce
// Results.
func ResultAccessor[T any](get func() Result[T], set func(T) Result[Void]) *Reactive[T] {
	if get == nil || set == nil {
		panic("reactive: ResultAccessor requires both get and set")
	}
	return newReactive[T](&accessor[T]{
		get: get,
		set: func(v T) error {
			if res := set(v); res.err != nil {
				return res.err
			}
			return nil
		},
	})
}

// ToMut wraps r as an accessor that reads r and writes back to it. Writing
// the wrapper of a reactive that does not accept writes fails with the same
// programming error as writing r directly.
func ToMut[T any](r *Reactive[T]) *Reactive[T] {
	return newReactive[T](&accessor[T]{
		get: func() Result[T] {
			return Read(r)
		},
		set: func(v T) error {
			return Write(r, v)
		},
	})
}

package reactive

import (
	"errors"
	"log/slog"
	"time"

	"github.com/vango-dev/reference/pkg/tag"
)

// Read returns the current result of r, recomputing it only when a tag it
// depends on has moved since the last computation. The tag of r is consumed
// into the enclosing tracking frame, so a formula reading r depends on it.
func Read[T any](r *Reactive[T]) Result[T] {
	if r.tag != nil && tag.Validate(r.tag, r.lastRevision) {
		tag.Consume(r.tag)
		return r.result()
	}

	switch v := r.variant.(type) {
	case *mutableCell:
		// Writes already stored the value; only the snapshot is stale.
		r.tag = v.tag
		r.lastRevision = tag.ValueOf(v.tag)
		tag.Consume(v.tag)
		return r.result()
	case readonlyCell, deeplyConstant, constantError:
		r.tag = tag.Constant
		r.lastRevision = tag.ConstantRevision
		return r.result()
	case *fallibleFormula[T]:
		return evaluate(r, v.compute, true)
	case *infallibleFormula[T]:
		return evaluate(r, func() Result[T] { return Ok(v.compute()) }, false)
	case *accessor[T]:
		return evaluate(r, v.get, true)
	default:
		panic("reactive: unknown variant")
	}
}

// evaluate runs compute inside a fresh tracking frame and caches the
// outcome. Failures are only caught for fallible computations.
func evaluate[T any](r *Reactive[T], compute func() Result[T], fallible bool) Result[T] {
	info := r.info()
	notifyComputeStarted(info)

	var start time.Time
	if Debug.LogComputations {
		start = time.Now()
	}

	done := false
	defer func() {
		if !done {
			notifyComputeFinished(info, errComputePanicked)
		}
	}()

	var res Result[T]
	fresh := tag.Track(func() {
		if fallible {
			res = guard(compute)
		} else {
			res = compute()
		}
	})
	done = true

	if res.err != nil {
		r.storeError(res.err)
		logUserError(info, res.err)
	} else {
		r.storeValue(res.value, fresh)
	}
	// A failed computation still depends on what it read before failing.
	tag.Consume(fresh)

	if Debug.LogComputations {
		Logger().Debug("reactive: computed",
			slog.Uint64("id", info.ID),
			slog.String("kind", info.Kind.String()),
			slog.Duration("duration", time.Since(start)),
			slog.Bool("ok", res.err == nil),
		)
	}
	notifyComputeFinished(info, res.Err())
	return res
}

// guard runs compute, converting a panic into an Err result.
func guard[T any](compute func() Result[T]) (res Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			repanicProgrammingError(p)
			res = Result[T]{err: recovered(p)}
		}
	}()
	return compute()
}

// guardSet runs set, converting a panic into a *UserError.
func guardSet[T any](set func(T) error, value T) (err error) {
	defer func() {
		if p := recover(); p != nil {
			repanicProgrammingError(p)
			err = recovered(p)
		}
	}()
	return set(value)
}

// repanicProgrammingError lets DevMode panics from nested writes escape user
// code boundaries.
func repanicProgrammingError(p any) {
	if err, ok := p.(error); ok && errors.Is(err, ErrNotUpdatable) {
		panic(p)
	}
}

// Write stores value into r. Mutable cells take the value directly and
// invalidate their dependents; accessors pass it to their setter and re-run
// their getter on the next Read.
//
// A failure raised by an accessor's setter is stored on r and returned as a
// *UserError. Writing a reactive that does not accept writes returns an error
// wrapping ErrNotUpdatable and leaves r unchanged; with DevMode set it panics
// instead.
func Write[T any](r *Reactive[T], value T) error {
	err := write(r, value)
	notifyWritten(r.info(), err)
	if err != nil && DevMode && errors.Is(err, ErrNotUpdatable) {
		panic(err)
	}
	return err
}

func write[T any](r *Reactive[T], value T) error {
	switch v := r.variant.(type) {
	case *mutableCell:
		r.value = value
		r.hasValue = true
		r.err = nil
		tag.Dirty(v.tag)
		r.tag = nil
		return nil
	case *accessor[T]:
		err := guardSet(v.set, value)
		if err == nil {
			r.tag = nil
			return nil
		}
		if ue, ok := err.(*UserError); ok {
			r.storeError(ue)
			logUserError(r.info(), ue)
			return ue
		}
		// Programming errors from nested writes leave r untouched.
		return err
	default:
		return notUpdatable(r.info())
	}
}

// Unwrap reads r and returns its value, panicking with the *UserError if the
// read failed. Inside a fallible computation the panic is caught again and
// stored on the enclosing reactive.
func Unwrap[T any](r *Reactive[T]) T {
	res := Read(r)
	if res.err != nil {
		panic(res.err)
	}
	return res.value
}

// ClearError drops the error and tag cached on r so that the next Read tries
// again. r keeps its identity. Poisoned reactives stay failed.
func ClearError[T any](r *Reactive[T]) {
	if _, ok := r.variant.(constantError); ok {
		return
	}
	r.err = nil
	r.tag = nil
}

// IsConstant reports whether r can never change: read-only cells, deeply
// constant values, poison, and formulas whose last computation read nothing
// that can change.
func IsConstant[T any](r *Reactive[T]) bool {
	switch r.variant.(type) {
	case readonlyCell, deeplyConstant, constantError:
		return true
	}
	return r.tag == tag.Constant
}

// HasError reports whether r currently holds a failure.
func HasError[T any](r *Reactive[T]) bool {
	return r.err != nil
}

// KindOf returns the variant of r.
func KindOf[T any](r *Reactive[T]) Kind {
	return r.Kind()
}

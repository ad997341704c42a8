// Package reactive provides the fine-grained reactive values consumed by the
// template VM.
//
// Every dynamic value flowing through rendering is a *Reactive[T]. A reactive
// is one of seven kinds:
//
//   - MutableCell: a data cell that accepts writes
//   - ReadonlyCell: a data cell that never changes
//   - DeeplyConstant: a read-only cell whose properties are constant too
//   - FallibleFormula: a memoized computation over user code
//   - InfallibleFormula: a memoized computation over trusted code
//   - Accessor: a custom get/set pair bridging to external state
//   - ConstantError: a permanently failed value ("poison")
//
// # Reading and Writing
//
//	count := reactive.MutableCell(0)
//	doubled := reactive.FallibleFormula(func() (int, error) {
//	    return reactive.Unwrap(count) * 2, nil
//	})
//
//	reactive.Read(doubled)     // Ok(0), computes
//	reactive.Read(doubled)     // Ok(0), cached
//	reactive.Write(count, 5)
//	reactive.Read(doubled)     // Ok(10), recomputes
//
// Read validates the cached result against the dependency tags consumed the
// last time the value was computed. User code is only re-run when one of
// those tags moved.
//
// # Errors
//
// Failures in user code (returned errors and panics) never escape a
// reactive. They are stored on the node as a *UserError and returned as an
// Err result; the next read tries again. Unwrap is the only operation that
// rethrows, by panicking with the *UserError.
//
// Invalid API use, like writing a ReadonlyCell, is a programming error:
// Write returns an error wrapping ErrNotUpdatable (or panics when DevMode is
// set) and leaves the value untouched.
//
// # Properties
//
// Property and Path derive child reactives for dotted property access. The
// child for a given parent and key is created once and returned on every
// later call.
//
// # Thread Safety
//
// Reactives are not safe for concurrent use. All reads and writes happen on
// the render goroutine.
package reactive

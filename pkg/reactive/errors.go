package reactive

import (
	"errors"
	"fmt"
	"runtime/debug"

	rerrors "github.com/vango-dev/reference/internal/errors"
)

// ErrNotUpdatable is wrapped by the error Write returns for reactives that do
// not accept writes: read-only cells, constants, poison and formulas.
var ErrNotUpdatable = errors.New("reactive: not updatable")

// ErrPoisoned matches the errors stored on ConstantError reactives.
var ErrPoisoned = errors.New("reactive: poisoned constant")

// errComputePanicked is reported to observers when an infallible computation
// panics out of the engine.
var errComputePanicked = errors.New("reactive: infallible computation panicked")

// UserError wraps a failure raised by user code inside a compute, get or set
// function. It is stored on the reactive that caught it.
type UserError struct {
	// Err is the error returned by user code, or an error describing the
	// recovered panic value.
	Err error

	// Panic is the recovered panic value, if the failure was a panic.
	Panic any

	// Stack is the goroutine stack captured when a panic was recovered.
	Stack []byte

	poisoned bool
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.poisoned {
		return "reactive: poisoned constant: " + e.Err.Error()
	}
	return "reactive: user computation failed: " + e.Err.Error()
}

// Unwrap returns the underlying user error.
func (e *UserError) Unwrap() error {
	return e.Err
}

// Is reports ErrPoisoned for errors cached on ConstantError reactives.
func (e *UserError) Is(target error) bool {
	return target == ErrPoisoned && e.poisoned
}

// Poisoned reports whether the error is cached permanently on a ConstantError.
func (e *UserError) Poisoned() bool {
	return e.poisoned
}

// Diagnostic converts the error to a coded diagnostic for display.
func (e *UserError) Diagnostic() *rerrors.Error {
	code := "R002"
	if e.poisoned {
		code = "R003"
	}
	return rerrors.New(code).Wrap(e.Err)
}

// userError wraps err in a *UserError, reusing it if it already is one.
func userError(err error) *UserError {
	if err == nil {
		return nil
	}
	if ue, ok := err.(*UserError); ok {
		return ue
	}
	return &UserError{Err: err}
}

// recovered converts a recovered panic value into a *UserError.
func recovered(p any) *UserError {
	if ue, ok := p.(*UserError); ok {
		return ue
	}
	err, ok := p.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", p)
	}
	return &UserError{Err: err, Panic: p, Stack: debug.Stack()}
}

// poisonError marks err as a permanent constant failure.
func poisonError(err error) *UserError {
	if err == nil {
		err = errors.New("nil error")
	}
	ue := userError(err)
	if ue.poisoned {
		return ue
	}
	return &UserError{Err: ue.Err, Panic: ue.Panic, Stack: ue.Stack, poisoned: true}
}

// notUpdatable builds the programming error returned by Write.
func notUpdatable(info NodeInfo) error {
	detail := fmt.Sprintf("%s #%d", info.Kind, info.ID)
	if info.Description != "" {
		detail += " (" + info.Description + ")"
	}
	err := rerrors.New("R001").WithDetail(detail).Wrap(ErrNotUpdatable)
	if file, line, ok := creationSite(info.ID); ok {
		err.WithLocation(file, line)
	}
	return err
}

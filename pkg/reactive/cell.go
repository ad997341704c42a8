package reactive

import "github.com/vango-dev/reference/pkg/tag"

// MutableCell creates a data cell that accepts writes. Its tag is dirtied on
// every write, invalidating everything that read it.
func MutableCell[T any](value T) *Reactive[T] {
	t := tag.New()
	r := newReactive[T](&mutableCell{tag: t})
	r.storeValue(value, t)
	return r
}

// ReadonlyCell creates a data cell that never changes.
func ReadonlyCell[T any](value T) *Reactive[T] {
	r := newReactive[T](readonlyCell{})
	r.storeValue(value, tag.Constant)
	return r
}

// DeeplyConstant creates a read-only cell whose value, and every property
// reachable from it, is assumed immutable. Property children of a deeply
// constant reactive are deeply constant too.
func DeeplyConstant[T any](value T) *Reactive[T] {
	r := newReactive[T](deeplyConstant{})
	r.storeValue(value, tag.Constant)
	return r
}

// Poison creates a permanently failed reactive holding err. Reading it always
// returns the same Err result and it never leaves the error state.
func Poison[T any](err error) *Reactive[T] {
	r := newReactive[T](constantError{})
	r.err = poisonError(err)
	r.tag = tag.Constant
	r.lastRevision = tag.ConstantRevision
	return r
}

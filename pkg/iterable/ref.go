package iterable

import (
	"github.com/vango-dev/reference/internal/identity"
	"github.com/vango-dev/reference/pkg/reactive"
	"github.com/vango-dev/reference/pkg/tag"
)

// CreateIteratorRef returns a reactive iterator over the value of list. A new
// iterator is built whenever list changes; until then every read returns the
// same iterator. The key path is validated up front.
//
// A failure stored on list is rethrown from Read of the returned reactive by
// panicking with its *reactive.UserError.
func CreateIteratorRef[T any](list *reactive.Reactive[T], keyPath string) (*reactive.Reactive[Iterator], error) {
	keyFor, err := KeyFor(keyPath)
	if err != nil {
		return nil, err
	}
	return reactive.InfallibleFormula(func() Iterator {
		return newIterator(reactive.Unwrap(list), uniqueKeyFor(keyFor))
	}), nil
}

// CreateIteratorItemRef returns the reactive loop variable for one item. A
// write only invalidates readers when the new value is not identical to the
// current one.
func CreateIteratorItemRef(initial any) *reactive.Reactive[any] {
	t := tag.New()
	value := initial

	return reactive.ResultAccessor(
		func() reactive.Result[any] {
			tag.Consume(t)
			return reactive.Ok(value)
		},
		func(v any) reactive.Result[reactive.Void] {
			if !identity.Same(value, v) {
				value = v
				tag.Dirty(t)
			}
			return reactive.Ok(reactive.Void{})
		},
	)
}

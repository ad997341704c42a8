package reactive

import (
	"fmt"

	"github.com/vango-dev/reference/pkg/property"
	"github.com/vango-dev/reference/pkg/tag"
)

// Property returns the child reactive for property key of parent. The child
// is created on first access and the same child is returned for every later
// call with the same parent and key.
//
// Children of a deeply constant parent are resolved once, outside of
// dependency tracking: a successful lookup yields another deeply constant
// reactive, a failed one a poisoned reactive. Children of any other parent
// are accessors that re-read the parent and depend only on the tag of this
// particular property, so writes to sibling properties do not invalidate
// them.
func Property[T any](parent *Reactive[T], key string) *Reactive[any] {
	if child, ok := parent.children.lookup(key); ok {
		return child
	}

	var child *Reactive[any]
	if _, ok := parent.variant.(deeplyConstant); ok {
		child = constantProperty(parent, key)
	} else {
		child = propertyAccessor(parent, key)
	}
	parent.children.store(key, child)
	return child
}

func getProperty(obj any, key string) Result[any] {
	v, err := property.Get(obj, key)
	if err != nil {
		return Err[any](err)
	}
	return Ok(v)
}

func constantProperty[T any](parent *Reactive[T], key string) *Reactive[any] {
	var res Result[any]
	tag.Untrack(func() {
		res = guard(func() Result[any] {
			return AndThen(Read(parent), func(obj T) Result[any] {
				return getProperty(obj, key)
			})
		})
	})

	if res.err != nil {
		child := Poison[any](res.err)
		info := child.info()
		notifyPoisoned(info, child.err)
		logPoison(info, child.err)
		return child
	}
	return DeeplyConstant(res.value)
}

func propertyAccessor[T any](parent *Reactive[T], key string) *Reactive[any] {
	return newReactive[any](&accessor[any]{
		get: func() Result[any] {
			return AndThen(Read(parent), func(v T) Result[any] {
				obj := any(v)
				if !property.Supports(obj) {
					return Ok[any](nil)
				}
				tag.Consume(property.TagFor(obj, key))
				return getProperty(obj, key)
			})
		},
		set: func(value any) error {
			var res Result[T]
			tag.Untrack(func() {
				res = Read(parent)
			})
			if res.err != nil {
				return res.err
			}
			obj := any(res.value)
			if err := property.Set(obj, key, value); err != nil {
				return userError(err)
			}
			property.DirtyTagFor(obj, key)
			return nil
		},
	})
}

// Path applies Property once per segment of a dotted path. Every
// intermediate reactive is cached and invalidated on its own. The empty path
// returns root itself, viewed as a *Reactive[any].
func Path[T any](root *Reactive[T], path string) *Reactive[any] {
	return PathSegments(root, property.SplitPath(path))
}

// PathSegments is Path for a pre-split path.
func PathSegments[T any](root *Reactive[T], segments []string) *Reactive[any] {
	if len(segments) == 0 {
		return erase(root)
	}
	cur := Property(root, segments[0])
	for _, seg := range segments[1:] {
		cur = Property(cur, seg)
	}
	return cur
}

// erase returns a *Reactive[any] view of r. The view is created once per
// reactive.
func erase[T any](r *Reactive[T]) *Reactive[any] {
	if ra, ok := any(r).(*Reactive[any]); ok {
		return ra
	}
	if r.children.erased != nil {
		return r.children.erased
	}

	var view *Reactive[any]
	switch r.variant.(type) {
	case deeplyConstant:
		view = DeeplyConstant[any](r.value)
	case *mutableCell, *accessor[T]:
		view = newReactive[any](&accessor[any]{
			get: func() Result[any] {
				return MapResult(Read(r), func(v T) any { return v })
			},
			set: func(value any) error {
				v, ok := value.(T)
				if !ok && value != nil {
					return userError(fmt.Errorf("reactive: cannot write %T to %s", value, r))
				}
				return Write(r, v)
			},
		})
	default:
		view = ResultFormula(func() Result[any] {
			return MapResult(Read(r), func(v T) any { return v })
		})
	}
	r.children.erased = view
	return view
}

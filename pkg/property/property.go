// Package property reads and writes named properties on arbitrary values and
// keeps the per-object, per-property tags used for fine-grained invalidation.
//
// Lookup order for Get and Set:
//
//  1. values implementing Getter / Setter
//  2. cty.Value objects, maps, lists and tuples (read-only)
//  3. reflection: maps with string keys, structs (field name, then json tag),
//     pointers to those, slices and arrays (numeric keys and "length")
//
// A missing property reads as nil. Reading a property of a value that does
// not support property access also yields nil.
package property

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrNotSettable is returned when a property cannot be written, either
	// because the value is immutable or because it is not addressable.
	ErrNotSettable = errors.New("property: not settable")

	// ErrUnknownValue is returned when reading through a cty value that is not
	// yet known.
	ErrUnknownValue = errors.New("property: value is not known")
)

// Getter is implemented by values that resolve their own properties.
type Getter interface {
	GetProperty(key string) (any, error)
}

// Setter is implemented by values that accept property writes. Implementations
// are responsible for their own change notification beyond DirtyTagFor.
type Setter interface {
	SetProperty(key string, value any) error
}

// Supports reports whether obj supports property access.
func Supports(obj any) bool {
	if obj == nil {
		return false
	}
	if _, ok := obj.(Getter); ok {
		return true
	}
	if v, ok := obj.(cty.Value); ok {
		return ctySupports(v)
	}
	return reflectSupports(obj)
}

// Get returns the property key of obj.
func Get(obj any, key string) (any, error) {
	if obj == nil {
		return nil, nil
	}
	if g, ok := obj.(Getter); ok {
		return g.GetProperty(key)
	}
	if v, ok := obj.(cty.Value); ok {
		return ctyGet(v, key)
	}
	return reflectGet(obj, key)
}

// Set writes value to the property key of obj. It does not dirty the
// property's tag; callers pair it with DirtyTagFor.
func Set(obj any, key string, value any) error {
	if obj == nil {
		return fmt.Errorf("%w: cannot set %q on nil", ErrNotSettable, key)
	}
	if s, ok := obj.(Setter); ok {
		return s.SetProperty(key, value)
	}
	if _, ok := obj.(cty.Value); ok {
		return fmt.Errorf("%w: cty values are immutable", ErrNotSettable)
	}
	return reflectSet(obj, key, value)
}

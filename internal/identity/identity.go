// Package identity normalizes arbitrary Go values into comparable map keys.
//
// Object-like values (pointers, maps, slices, channels, functions) are keyed
// by the address they refer to, so two references to the same backing object
// produce the same key. Everything else is keyed by value.
package identity

import (
	"fmt"
	"reflect"
	"unsafe"
)

// ref is the key of an object-like value: its dynamic type plus the address
// of the object. Slices also carry their length so a re-slice of the same
// array is a different object.
type ref struct {
	typ reflect.Type
	ptr unsafe.Pointer
	len int
}

// opaque is the key of a non-comparable value that has no address, such as a
// struct holding a slice. It falls back to the value's printed form.
type opaque struct {
	typ  reflect.Type
	repr string
}

// IsObject reports whether v has reference identity.
func IsObject(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	}
	return false
}

// Key returns a comparable key for v. The boolean reports whether the key is
// an object identity (true) or a value identity (false).
func Key(v any) (any, bool) {
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		// Pointers and channels are comparable already.
		return v, true
	case reflect.Map, reflect.Func:
		return ref{typ: rv.Type(), ptr: rv.UnsafePointer()}, true
	case reflect.Slice:
		return ref{typ: rv.Type(), ptr: rv.UnsafePointer(), len: rv.Len()}, true
	}

	if rv.Comparable() {
		return v, false
	}
	return opaque{typ: rv.Type(), repr: fmt.Sprintf("%#v", v)}, false
}

// Same reports whether a and b are the identical value: the same object for
// object-like values, equal values otherwise. Values that cannot be compared
// are never the same.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	ka, _ := Key(a)
	kb, _ := Key(b)
	if _, ok := ka.(opaque); ok {
		return false
	}
	return ka == kb
}

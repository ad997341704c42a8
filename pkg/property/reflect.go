package property

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// lengthKey is the pseudo-property exposing the length of slices and arrays.
const lengthKey = "length"

// indirect follows pointers and interfaces down to the underlying value.
// It reports false for nil pointers.
func indirect(rv reflect.Value) (reflect.Value, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, true
}

func reflectSupports(obj any) bool {
	rv, ok := indirect(reflect.ValueOf(obj))
	if !ok {
		return false
	}
	switch rv.Kind() {
	case reflect.Map:
		return rv.Type().Key().Kind() == reflect.String
	case reflect.Struct, reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func reflectGet(obj any, key string) (any, error) {
	rv, ok := indirect(reflect.ValueOf(obj))
	if !ok {
		return nil, nil
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, nil
		}
		v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, nil
		}
		return v.Interface(), nil

	case reflect.Struct:
		f, ok := structField(rv, key)
		if !ok {
			return nil, nil
		}
		return f.Interface(), nil

	case reflect.Slice, reflect.Array:
		if key == lengthKey {
			return rv.Len(), nil
		}
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, nil
		}
		return rv.Index(i).Interface(), nil
	}

	return nil, nil
}

func reflectSet(obj any, key string, value any) error {
	outer := reflect.ValueOf(obj)
	rv, ok := indirect(outer)
	if !ok {
		return fmt.Errorf("%w: cannot set %q on nil pointer", ErrNotSettable, key)
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%w: map key type %s", ErrNotSettable, rv.Type().Key())
		}
		if rv.IsNil() {
			return fmt.Errorf("%w: nil map", ErrNotSettable)
		}
		v, err := assignable(value, rv.Type().Elem())
		if err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()), v)
		return nil

	case reflect.Struct:
		f, ok := structField(rv, key)
		if !ok {
			return fmt.Errorf("%w: no field %q on %s", ErrNotSettable, key, rv.Type())
		}
		if !f.CanSet() {
			return fmt.Errorf("%w: %s.%s is not addressable", ErrNotSettable, rv.Type(), key)
		}
		v, err := assignable(value, f.Type())
		if err != nil {
			return err
		}
		f.Set(v)
		return nil

	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return fmt.Errorf("%w: index %q out of range", ErrNotSettable, key)
		}
		el := rv.Index(i)
		if !el.CanSet() {
			return fmt.Errorf("%w: %s is not addressable", ErrNotSettable, rv.Type())
		}
		v, err := assignable(value, el.Type())
		if err != nil {
			return err
		}
		el.Set(v)
		return nil
	}

	return fmt.Errorf("%w: %T has no properties", ErrNotSettable, obj)
}

// structField finds an exported field by Go name, then by json tag name.
func structField(rv reflect.Value, key string) (reflect.Value, bool) {
	t := rv.Type()
	if sf, ok := t.FieldByName(key); ok && sf.IsExported() {
		f, err := rv.FieldByIndexErr(sf.Index)
		if err != nil {
			// Promoted through a nil embedded pointer.
			return reflect.Value{}, false
		}
		return f, true
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == key {
			return rv.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// assignable converts value to typ, or reports why it cannot.
func assignable(value any, typ reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(typ), nil
	}
	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(typ) {
		return v, nil
	}
	if v.Type().ConvertibleTo(typ) {
		return v.Convert(typ), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot assign %s to %s", ErrNotSettable, v.Type(), typ)
}

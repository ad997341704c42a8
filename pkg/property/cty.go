package property

import (
	"fmt"
	"strconv"

	"github.com/zclconf/go-cty/cty"
)

func ctySupports(v cty.Value) bool {
	if !v.IsKnown() || v.IsNull() {
		return false
	}
	ty := v.Type()
	return ty.IsObjectType() || ty.IsMapType() || ty.IsListType() || ty.IsTupleType()
}

func ctyGet(v cty.Value, key string) (any, error) {
	if !v.IsKnown() {
		return nil, fmt.Errorf("%w: reading %q", ErrUnknownValue, key)
	}
	if v.IsNull() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty.IsObjectType():
		if !ty.HasAttribute(key) {
			return nil, nil
		}
		return FromCty(v.GetAttr(key))

	case ty.IsMapType():
		k := cty.StringVal(key)
		if !v.HasIndex(k).True() {
			return nil, nil
		}
		return FromCty(v.Index(k))

	case ty.IsListType() || ty.IsTupleType():
		if key == lengthKey {
			return v.LengthInt(), nil
		}
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= v.LengthInt() {
			return nil, nil
		}
		return FromCty(v.Index(cty.NumberIntVal(int64(i))))
	}

	return nil, nil
}

// FromCty converts primitive cty values to their Go equivalents (string,
// float64, bool, nil). Collections are returned as cty.Value so property
// access and iteration keep working on them. Unknown values are an error.
func FromCty(v cty.Value) (any, error) {
	if !v.IsKnown() {
		return nil, ErrUnknownValue
	}
	if v.IsNull() {
		return nil, nil
	}
	if !v.Type().IsPrimitiveType() {
		return v, nil
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f, nil
	case cty.Bool:
		return v.True(), nil
	default:
		return nil, fmt.Errorf("property: unsupported primitive type: %s", v.Type().FriendlyName())
	}
}

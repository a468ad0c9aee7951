package datamap

import (
	"math"
	"strconv"

	"github.com/zclconf/go-cty/cty"
)

// Int returns a number value for any integer type.
func Int[N ~int | ~int8 | ~int16 | ~int32 | ~int64](n N) cty.Value {
	return cty.NumberIntVal(int64(n))
}

// Uint returns a number value for any unsigned integer type.
func Uint[N ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](n N) cty.Value {
	return cty.NumberUIntVal(uint64(n))
}

// Float32 returns the number whose shortest decimal form matches f, so 0.1
// stays 0.1 rather than its widened float64 expansion. NaN and infinities
// have no number value and map to null; negative zero maps to zero.
func Float32(f float32) cty.Value {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return cty.NullVal(cty.Number)
	}
	if f == 0 {
		return cty.Zero
	}
	return cty.MustParseNumberVal(strconv.FormatFloat(float64(f), 'f', -1, 32))
}

// OptFloat32 is Float32, or null when f is nil.
func OptFloat32(f *float32) cty.Value {
	if f == nil {
		return cty.NullVal(cty.Number)
	}
	return Float32(*f)
}

// OptUint is Uint, or null when n is nil.
func OptUint[N ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](n *N) cty.Value {
	if n == nil {
		return cty.NullVal(cty.Number)
	}
	return Uint(*n)
}

// OptBool returns a bool value, or null when b is nil.
func OptBool(b *bool) cty.Value {
	if b == nil {
		return cty.NullVal(cty.Bool)
	}
	return cty.BoolVal(*b)
}

// Text renders a scalar value as a delimited-file cell. Null renders as the
// empty string, booleans as true/false and numbers in their shortest
// decimal form.
func Text(v cty.Value) string {
	if v.IsNull() || !v.IsKnown() {
		return ""
	}
	switch ty := v.Type(); {
	case ty.Equals(cty.String):
		return v.AsString()
	case ty.Equals(cty.Bool):
		return strconv.FormatBool(v.True())
	case ty.Equals(cty.Number):
		return v.AsBigFloat().Text('f', -1)
	default:
		panic("datamap: non-scalar value of type " + ty.FriendlyName())
	}
}

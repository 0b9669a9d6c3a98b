package component

import "math"

// Converter maps a property type to and from Value. From reports false when
// the Value does not hold a compatible variant.
type Converter[T comparable] struct {
	To   func(T) Value
	From func(Value) (T, bool)
}

type numeric interface {
	~int | ~int32 | ~int64 | ~uint8 | ~float32 | ~float64
}

func isInteger[T numeric]() bool {
	half := 0.5
	return T(half) == 0
}

// Number converts numeric properties through NumberValue. Integer types
// accept only finite whole numbers within their range.
func Number[T numeric]() Converter[T] {
	return Converter[T]{
		To: func(v T) Value { return NumberValue(float64(v)) },
		From: func(v Value) (T, bool) {
			f, ok := v.Number()
			if !ok {
				return 0, false
			}
			if !isInteger[T]() {
				return T(f), true
			}
			if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
				return 0, false
			}
			// out of range conversions wrap or saturate, so they do not round-trip
			n := T(f)
			if float64(n) != f {
				return 0, false
			}
			return n, true
		},
	}
}

var Bool = Converter[bool]{
	To:   BoolValue,
	From: Value.Bool,
}

var String = Converter[string]{
	To:   StringValue,
	From: Value.Str,
}

package domain

import (
	"encoding/json"
	"math"
	"strconv"
)

// Value is the result of evaluating a transform at a single point.
// The zero value is Undefined: the point is a pole of the transform
// and the renderer must show a gap instead of a number.
type Value struct {
	v  float64
	ok bool
}

// Undefined marks a point where the transform has no value.
var Undefined = Value{}

// Defined wraps a finite number.
func Defined(v float64) Value {
	return Value{v: v, ok: true}
}

// IsDefined reports whether the value carries a number.
func (v Value) IsDefined() bool {
	return v.ok
}

// Float returns the number and whether it is defined.
func (v Value) Float() (float64, bool) {
	return v.v, v.ok
}

// Or returns the number, or fallback when the value is Undefined.
func (v Value) Or(fallback float64) float64 {
	if !v.ok {
		return fallback
	}
	return v.v
}

// NaN returns the number, or NaN when the value is Undefined.
// Useful for plotting libraries that treat NaN as a break.
func (v Value) NaN() float64 {
	return v.Or(math.NaN())
}

func (v Value) String() string {
	if !v.ok {
		return "undefined"
	}
	return strconv.FormatFloat(v.v, 'g', -1, 64)
}

// MarshalJSON encodes Undefined as null so renderers see a gap.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

// UnmarshalJSON accepts a number or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Undefined
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Defined(f)
	return nil
}

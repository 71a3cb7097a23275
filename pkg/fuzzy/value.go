package fuzzy

import (
	"fmt"
	"strconv"
)

// Value is an immutable floating point value with fuzzy equality and ordering.
//
// Value does not support meaningful hashing: Hash always returns the same
// sentinel. Use Hashed when values must act as map keys.
type Value[F Float] struct {
	value  F
	margin F
	ulps   int
}

// NewValue returns a fuzzy value. Tolerances are stored as absolute values.
func NewValue[F Float](value, marginOfError F, ulpTolerance int) Value[F] {
	return Value[F]{
		value:  value,
		margin: abs(marginOfError),
		ulps:   int(absTolerance(ulpTolerance)),
	}
}

// FromHashed drops the boundary scale of h.
func FromHashed[F Float](h Hashed[F]) Value[F] {
	return Value[F]{value: h.value, margin: h.margin, ulps: h.ulps}
}

// Value returns the raw value.
func (v Value[F]) Value() F { return v.value }

// MarginOfError returns the absolute margin of error.
func (v Value[F]) MarginOfError() F { return v.margin }

// ULPTolerance returns the allowed ULP distance.
func (v Value[F]) ULPTolerance() int { return v.ulps }

// Equal compares v with other using the tolerances of v.
// The tolerances of other are ignored.
func (v Value[F]) Equal(other Value[F]) bool {
	return v.EqualRaw(other.value)
}

// EqualRaw compares v with a raw value using the tolerances of v.
func (v Value[F]) EqualRaw(other F) bool {
	return AreEqual(v.value, other, v.margin, v.ulps)
}

// Compare orders v and other using the tolerances of v.
func (v Value[F]) Compare(other Value[F]) int {
	return v.CompareRaw(other.value)
}

// CompareRaw orders v and a raw value using the tolerances of v.
func (v Value[F]) CompareRaw(other F) int {
	return Compare(v.value, other, v.margin, v.ulps)
}

// Less reports v < other.
func (v Value[F]) Less(other Value[F]) bool { return v.Compare(other) < 0 }

// LessOrEqual reports v <= other.
func (v Value[F]) LessOrEqual(other Value[F]) bool { return v.Compare(other) <= 0 }

// Greater reports v > other.
func (v Value[F]) Greater(other Value[F]) bool { return v.Compare(other) > 0 }

// GreaterOrEqual reports v >= other.
func (v Value[F]) GreaterOrEqual(other Value[F]) bool { return v.Compare(other) >= 0 }

// LessRaw reports v < other.
func (v Value[F]) LessRaw(other F) bool { return v.CompareRaw(other) < 0 }

// LessOrEqualRaw reports v <= other.
func (v Value[F]) LessOrEqualRaw(other F) bool { return v.CompareRaw(other) <= 0 }

// GreaterRaw reports v > other.
func (v Value[F]) GreaterRaw(other F) bool { return v.CompareRaw(other) > 0 }

// GreaterOrEqualRaw reports v >= other.
func (v Value[F]) GreaterOrEqualRaw(other F) bool { return v.CompareRaw(other) >= 0 }

// Hash returns a constant. It satisfies the contract that equal values hash
// equally, but carries no information about the value.
func (v Value[F]) Hash() uint64 {
	return 0
}

// Float32 converts the raw value to float32.
func (v Value[F]) Float32() float32 { return float32(v.value) }

// Float64 converts the raw value to float64.
func (v Value[F]) Float64() float64 { return float64(v.value) }

// Int64 truncates the raw value toward zero.
func (v Value[F]) Int64() int64 { return int64(v.value) }

// Int truncates the raw value toward zero.
func (v Value[F]) Int() int { return int(v.value) }

// Bool is false iff the value is fuzzy-equal to zero under its own tolerances.
func (v Value[F]) Bool() bool {
	return !v.EqualRaw(0)
}

func (v Value[F]) String() string {
	return formatFuzzy(v.value, v.margin, v.ulps)
}

// RawEqual compares a raw left operand with a fuzzy value.
// The tolerances of v govern the comparison.
func RawEqual[F Float](raw F, v Value[F]) bool {
	return v.EqualRaw(raw)
}

// RawCompare orders a raw left operand against a fuzzy value using the tolerances of v.
func RawCompare[F Float](raw F, v Value[F]) int {
	return -v.CompareRaw(raw)
}

func formatFuzzy[F Float](value, margin F, ulps int) string {
	bits := LayoutOf[F]().Width
	return fmt.Sprintf("%s ±%s (%d ulp)",
		strconv.FormatFloat(float64(value), 'g', -1, bits),
		strconv.FormatFloat(float64(margin), 'g', -1, bits),
		ulps)
}

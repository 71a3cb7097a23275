// Package fuzzy provides tolerance-based comparison of floating point numbers.
//
// Equality combines an absolute margin of error with a tolerance measured in
// units in the last place (ULP). The package also provides a bucketing scheme
// that makes fuzzy equality compatible with hashing, so fuzzy values can be
// used as keys of associative containers.
//
// Every operation is implemented once for both IEEE 754 binary32 (float32)
// and binary64 (float64) values through the Float type constraint.
package fuzzy

import (
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Float is the set of floating point types supported by the package.
type Float interface {
	constraints.Float
}

// ULP sizes at the largest finite magnitude of each precision.
// Stepping the bit pattern of MaxValue by one yields +Inf, so these are precomputed.
const (
	MaxFloat32ULP = 2.0282409603651670423947251286016e+31  // 2^104
	MaxFloat64ULP = 1.9958403095347198116563727130368e+292 // 2^971
)

// Layout describes the IEEE 754 field layout of one precision.
type Layout struct {
	Name            string
	Width           int // total bits
	ExponentBits    int
	MantissaBits    int
	MaxValue        float64
	SmallestNonzero float64
	MaxULP          float64
	Epsilon         float64
}

// Supported layouts.
var (
	Binary32 = Layout{
		Name:            "binary32",
		Width:           32,
		ExponentBits:    8,
		MantissaBits:    23,
		MaxValue:        math.MaxFloat32,
		SmallestNonzero: math.SmallestNonzeroFloat32,
		MaxULP:          MaxFloat32ULP,
		Epsilon:         0x1p-23,
	}
	Binary64 = Layout{
		Name:            "binary64",
		Width:           64,
		ExponentBits:    11,
		MantissaBits:    52,
		MaxValue:        math.MaxFloat64,
		SmallestNonzero: math.SmallestNonzeroFloat64,
		MaxULP:          MaxFloat64ULP,
		Epsilon:         0x1p-52,
	}
)

// LayoutOf returns the layout of F.
func LayoutOf[F Float]() Layout {
	if is32[F]() {
		return Binary32
	}
	return Binary64
}

// Bytes returns the encoded width in bytes.
func (l Layout) Bytes() int {
	return l.Width / 8
}

// ExponentMask returns the mask of the exponent field after shifting out the mantissa.
func (l Layout) ExponentMask() int64 {
	return 1<<l.ExponentBits - 1
}

// MantissaMask returns the mask of the mantissa field.
func (l Layout) MantissaMask() int64 {
	return 1<<l.MantissaBits - 1
}

// magnitudeMask clears the sign bit of a sign-extended bit pattern.
func (l Layout) magnitudeMask() int64 {
	return math.MaxInt64 >> (64 - l.Width)
}

func is32[F Float]() bool {
	var zero F
	return unsafe.Sizeof(zero) == 4
}

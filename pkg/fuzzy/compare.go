package fuzzy

import (
	"fmt"
	"math"
)

// AreEqual reports whether first and second are equal within the given tolerances.
//
// The absolute difference is checked against marginOfError first, which handles
// values near zero where ULP distances are disproportionately large. Otherwise the
// values must share a sign and lie at most ulpTolerance ULPs apart.
// Tolerances are used as given; a negative tolerance never matches.
func AreEqual[F Float](first, second, marginOfError F, ulpTolerance int) bool {
	if abs(first-second) <= marginOfError {
		return true
	}

	firstBits, secondBits := Bits(first), Bits(second)
	if (firstBits < 0) != (secondBits < 0) {
		return false
	}

	return distance(firstBits, secondBits) <= int64(ulpTolerance)
}

// Compare returns 0 if first and second are AreEqual, otherwise -1 if
// first < second and 1 if not. Ordering is consistent with equality but not
// a strict total order across a tolerance band.
func Compare[F Float](first, second, marginOfError F, ulpTolerance int) int {
	if AreEqual(first, second, marginOfError, ulpTolerance) {
		return 0
	}
	if first < second {
		return -1
	}
	return 1
}

// ULP returns the size of one unit in the last place at value.
//
// Special cases are:
//
//	ULP(NaN) = NaN
//	ULP(±Inf) = +Inf
//	ULP(±0) = smallest positive denormal
//	ULP(±MaxValue) = MaxFloat32ULP or MaxFloat64ULP
func ULP[F Float](value F) F {
	l := LayoutOf[F]()
	magnitude := abs(value)
	switch {
	case math.IsNaN(float64(value)):
		return F(math.NaN())
	case magnitude > F(l.MaxValue):
		return F(math.Inf(1))
	case magnitude == 0:
		return F(l.SmallestNonzero)
	case magnitude == F(l.MaxValue):
		return F(l.MaxULP)
	}
	return abs(FromBits[F](Bits(value)+1) - value)
}

// ULPDistance returns the number of representable values between first and second.
// Bit patterns do not vary monotonically across zero, so operands of different
// sign fail with ErrMixedSign.
func ULPDistance[F Float](first, second F) (int64, error) {
	firstBits, secondBits := Bits(first), Bits(second)
	if (firstBits < 0) != (secondBits < 0) {
		return 0, fmt.Errorf("%w: cannot calculate the ULP distance between %v and %v across the zero boundary", ErrMixedSign, first, second)
	}
	return distance(firstBits, secondBits), nil
}

// Boundary returns the width, in bit pattern units, of the bucket value is
// rounded into for hashing. It is the larger of the ULP tolerance and the
// margin of error expressed in ULPs at value, both multiplied by boundaryScale.
//
// The width is at least 1, so negative tolerances yield unit buckets. A scale
// below 1 counts as 1 and products saturate at math.MaxInt64.
func Boundary[F Float](value, marginOfError F, ulpTolerance, boundaryScale int) int64 {
	magnitude := abs(value)
	withError := magnitude + marginOfError
	scale := int64(max(boundaryScale, 1))

	ulpWidth := saturatingMul(int64(ulpTolerance), scale)
	marginWidth := saturatingMul(Bits(withError)-Bits(magnitude), scale)

	return max(ulpWidth, marginWidth, 1)
}

// RoundToBoundary returns the bit pattern of value truncated toward zero to a
// multiple of boundary. Widths below 1 count as 1.
func RoundToBoundary[F Float](value F, boundary int64) int64 {
	if boundary < 1 {
		boundary = 1
	}
	return Bits(value) / boundary * boundary
}

// InSameBoundary reports whether first and second round to the same bucket.
// The bucket width is computed from first only.
func InSameBoundary[F Float](first, second, marginOfError F, ulpTolerance, boundaryScale int) bool {
	boundary := Boundary(first, marginOfError, ulpTolerance, boundaryScale)
	return RoundToBoundary(first, boundary) == RoundToBoundary(second, boundary)
}

// BucketKey returns value rounded to its own boundary. It is the value
// component of the hash of a Hashed value.
func BucketKey[F Float](value, marginOfError F, ulpTolerance, boundaryScale int) int64 {
	return RoundToBoundary(value, Boundary(value, marginOfError, ulpTolerance, boundaryScale))
}

// sameBucket is the bucketing half of hashed equality. Bucket widths depend on
// the magnitude once the margin dominates, so the keys of both operands are
// compared in addition to InSameBoundary; hashes combine exactly these keys.
func sameBucket[F Float](first, second, marginOfError F, ulpTolerance, boundaryScale int) bool {
	return InSameBoundary(first, second, marginOfError, ulpTolerance, boundaryScale) &&
		BucketKey(first, marginOfError, ulpTolerance, boundaryScale) == BucketKey(second, marginOfError, ulpTolerance, boundaryScale)
}

const (
	hashSeed  = 17
	hashPrime = 29
)

// bucketHash combines the bucket key with the tolerance parameters.
// Arguments must already be normalized.
func bucketHash[F Float](value, marginOfError F, ulpTolerance, boundaryScale int) uint64 {
	h := uint64(hashSeed)
	h = h*hashPrime + uint64(BucketKey(value, marginOfError, ulpTolerance, boundaryScale))
	h = h*hashPrime + uint64(ulpTolerance)
	h = h*hashPrime + uint64(Bits(marginOfError))
	h = h*hashPrime + uint64(boundaryScale)
	return h
}

// distance assumes both patterns have the same sign, so the difference cannot overflow.
func distance(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}

func absTolerance(ulps int) int64 {
	v := int64(ulps)
	switch {
	case v == math.MinInt64:
		return math.MaxInt64
	case v < 0:
		return -v
	}
	return v
}

// saturatingMul multiplies non-negative a and positive b.
func saturatingMul(a, b int64) int64 {
	if a <= 0 {
		return a
	}
	if a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}

package fuzzy

import "fmt"

// Hashed is an immutable floating point value with fuzzy equality, ordering,
// and a hash consistent with that equality.
//
// Hashing needs a few compromises compared to Value:
//   - Both operands must have identical tolerances and boundary scale, since
//     they are part of the hash. Margins are compared exactly, so a margin of
//     error should be a constant rather than a computed value.
//   - Values are rounded into buckets of the bit pattern space. Values that are
//     within tolerance but lie across a bucket boundary compare as different.
//
// With a boundary scale of 1 the bucket is as wide as the largest tolerance and
// equality is transitive. Larger scales make straddling less likely at the
// cost of transitivity.
type Hashed[F Float] struct {
	value  F
	margin F
	ulps   int
	scale  int
}

// NewHashed returns a hashable fuzzy value. Tolerances are stored as absolute
// values and a boundary scale below 1 is stored as 1.
func NewHashed[F Float](value, marginOfError F, ulpTolerance, boundaryScale int) Hashed[F] {
	return Hashed[F]{
		value:  value,
		margin: abs(marginOfError),
		ulps:   int(absTolerance(ulpTolerance)),
		scale:  max(boundaryScale, 1),
	}
}

// ToHashed adds a boundary scale to v.
func ToHashed[F Float](v Value[F], boundaryScale int) Hashed[F] {
	return NewHashed(v.value, v.margin, v.ulps, boundaryScale)
}

// Value returns the raw value.
func (h Hashed[F]) Value() F { return h.value }

// MarginOfError returns the absolute margin of error.
func (h Hashed[F]) MarginOfError() F { return h.margin }

// ULPTolerance returns the allowed ULP distance.
func (h Hashed[F]) ULPTolerance() int { return h.ulps }

// BoundaryScale returns the bucket width multiplier.
func (h Hashed[F]) BoundaryScale() int { return h.scale }

// Equal reports whether h and other have identical parameters, fall into the
// same bucket, and are fuzzy-equal.
func (h Hashed[F]) Equal(other Hashed[F]) bool {
	return h.ulps == other.ulps &&
		h.margin == other.margin &&
		h.scale == other.scale &&
		sameBucket(h.value, other.value, h.margin, h.ulps, h.scale) &&
		AreEqual(h.value, other.value, h.margin, h.ulps)
}

// EqualRaw compares h with a raw value carrying the parameters of h.
func (h Hashed[F]) EqualRaw(other F) bool {
	return h.Equal(h.with(other))
}

// Compare returns 0 if h and other are Equal, otherwise orders the raw values.
func (h Hashed[F]) Compare(other Hashed[F]) int {
	if h.Equal(other) {
		return 0
	}
	if h.value < other.value {
		return -1
	}
	return 1
}

// CompareRaw orders h and a raw value carrying the parameters of h.
func (h Hashed[F]) CompareRaw(other F) int {
	return h.Compare(h.with(other))
}

// Less reports h < other.
func (h Hashed[F]) Less(other Hashed[F]) bool { return h.Compare(other) < 0 }

// LessOrEqual reports h <= other.
func (h Hashed[F]) LessOrEqual(other Hashed[F]) bool { return h.Compare(other) <= 0 }

// Greater reports h > other.
func (h Hashed[F]) Greater(other Hashed[F]) bool { return h.Compare(other) > 0 }

// GreaterOrEqual reports h >= other.
func (h Hashed[F]) GreaterOrEqual(other Hashed[F]) bool { return h.Compare(other) >= 0 }

// LessRaw reports h < other.
func (h Hashed[F]) LessRaw(other F) bool { return h.CompareRaw(other) < 0 }

// LessOrEqualRaw reports h <= other.
func (h Hashed[F]) LessOrEqualRaw(other F) bool { return h.CompareRaw(other) <= 0 }

// GreaterRaw reports h > other.
func (h Hashed[F]) GreaterRaw(other F) bool { return h.CompareRaw(other) > 0 }

// GreaterOrEqualRaw reports h >= other.
func (h Hashed[F]) GreaterOrEqualRaw(other F) bool { return h.CompareRaw(other) >= 0 }

// Hash combines the bucket of the value with the tolerance parameters.
// Equal values always hash equally.
func (h Hashed[F]) Hash() uint64 {
	return bucketHash(h.value, h.margin, h.ulps, h.scale)
}

// Boundary returns the bucket width of the value.
func (h Hashed[F]) Boundary() int64 {
	return Boundary(h.value, h.margin, h.ulps, h.scale)
}

// Float32 converts the raw value to float32.
func (h Hashed[F]) Float32() float32 { return float32(h.value) }

// Float64 converts the raw value to float64.
func (h Hashed[F]) Float64() float64 { return float64(h.value) }

// Int64 truncates the raw value toward zero.
func (h Hashed[F]) Int64() int64 { return int64(h.value) }

// Int truncates the raw value toward zero.
func (h Hashed[F]) Int() int { return int(h.value) }

// Bool is false iff the value is fuzzy-equal to zero under its own tolerances.
// Buckets are not consulted.
func (h Hashed[F]) Bool() bool {
	return !AreEqual(h.value, 0, h.margin, h.ulps)
}

func (h Hashed[F]) String() string {
	return fmt.Sprintf("%s x%d", formatFuzzy(h.value, h.margin, h.ulps), h.scale)
}

func (h Hashed[F]) with(value F) Hashed[F] {
	h.value = value
	return h
}

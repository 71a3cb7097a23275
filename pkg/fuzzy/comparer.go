package fuzzy

import "fmt"

// Hasher is the equality and hashing strategy of a HashMap.
// Implementations must return equal hashes for equal values.
type Hasher[F Float] interface {
	Equal(a, b F) bool
	Hash(v F) uint64
}

// Ordering orders raw values, e.g. for slices.SortFunc.
type Ordering[F Float] interface {
	Compare(a, b F) int
}

var (
	_ Hasher[float64]   = (*Comparer[float64])(nil)
	_ Ordering[float64] = (*Comparer[float64])(nil)
	_ Hasher[float32]   = (*HashedComparer[float32])(nil)
	_ Ordering[float32] = (*HashedComparer[float32])(nil)
)

// Comparer applies fuzzy equality and ordering to raw values.
//
// Its tolerances may be changed between calls. A Comparer is not safe for
// concurrent use while its settings are being changed.
type Comparer[F Float] struct {
	margin F
	ulps   int
}

// NewComparer returns a Comparer with the given tolerances.
func NewComparer[F Float](marginOfError F, ulpTolerance int) *Comparer[F] {
	c := &Comparer[F]{}
	c.SetMarginOfError(marginOfError)
	c.SetULPTolerance(ulpTolerance)
	return c
}

// MarginOfError returns the absolute margin of error.
func (c *Comparer[F]) MarginOfError() F { return c.margin }

// SetMarginOfError stores the absolute value of marginOfError.
func (c *Comparer[F]) SetMarginOfError(marginOfError F) { c.margin = abs(marginOfError) }

// ULPTolerance returns the allowed ULP distance.
func (c *Comparer[F]) ULPTolerance() int { return c.ulps }

// SetULPTolerance stores the absolute value of ulpTolerance.
func (c *Comparer[F]) SetULPTolerance(ulpTolerance int) { c.ulps = int(absTolerance(ulpTolerance)) }

// Equal reports whether a and b are AreEqual.
func (c *Comparer[F]) Equal(a, b F) bool {
	return AreEqual(a, b, c.margin, c.ulps)
}

// Compare orders a and b.
func (c *Comparer[F]) Compare(a, b F) int {
	return Compare(a, b, c.margin, c.ulps)
}

// Hash returns a constant, see Value.Hash.
func (c *Comparer[F]) Hash(F) uint64 {
	return 0
}

// HashAny is Hash for an untyped argument. It fails with ErrTypeMismatch
// unless v holds an F.
func (c *Comparer[F]) HashAny(v any) (uint64, error) {
	x, err := assertFloat[F](v)
	if err != nil {
		return 0, err
	}
	return c.Hash(x), nil
}

// HashedComparer applies hash-compatible fuzzy equality to raw values,
// matching the semantics of Hashed.
//
// Its settings may be changed between calls. A HashedComparer is not safe for
// concurrent use while its settings are being changed, and changing them
// invalidates hashes computed before.
type HashedComparer[F Float] struct {
	margin F
	ulps   int
	scale  int
}

// NewHashedComparer returns a HashedComparer with the given parameters.
func NewHashedComparer[F Float](marginOfError F, ulpTolerance, boundaryScale int) *HashedComparer[F] {
	c := &HashedComparer[F]{}
	c.SetMarginOfError(marginOfError)
	c.SetULPTolerance(ulpTolerance)
	c.SetBoundaryScale(boundaryScale)
	return c
}

// MarginOfError returns the absolute margin of error.
func (c *HashedComparer[F]) MarginOfError() F { return c.margin }

// SetMarginOfError stores the absolute value of marginOfError.
func (c *HashedComparer[F]) SetMarginOfError(marginOfError F) { c.margin = abs(marginOfError) }

// ULPTolerance returns the allowed ULP distance.
func (c *HashedComparer[F]) ULPTolerance() int { return c.ulps }

// SetULPTolerance stores the absolute value of ulpTolerance.
func (c *HashedComparer[F]) SetULPTolerance(ulpTolerance int) {
	c.ulps = int(absTolerance(ulpTolerance))
}

// BoundaryScale returns the bucket width multiplier.
func (c *HashedComparer[F]) BoundaryScale() int { return c.scale }

// SetBoundaryScale stores boundaryScale, clamped to at least 1.
func (c *HashedComparer[F]) SetBoundaryScale(boundaryScale int) { c.scale = max(boundaryScale, 1) }

// Equal reports whether a and b fall into the same bucket and are fuzzy-equal.
func (c *HashedComparer[F]) Equal(a, b F) bool {
	return sameBucket(a, b, c.margin, c.ulps, c.scale) && AreEqual(a, b, c.margin, c.ulps)
}

// Compare returns 0 if a and b are Equal, otherwise orders the raw values.
func (c *HashedComparer[F]) Compare(a, b F) int {
	if c.Equal(a, b) {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

// Hash returns the bucket hash of v, see Hashed.Hash.
func (c *HashedComparer[F]) Hash(v F) uint64 {
	return bucketHash(v, c.margin, c.ulps, c.scale)
}

// HashAny is Hash for an untyped argument. It fails with ErrTypeMismatch
// unless v holds an F.
func (c *HashedComparer[F]) HashAny(v any) (uint64, error) {
	x, err := assertFloat[F](v)
	if err != nil {
		return 0, err
	}
	return c.Hash(x), nil
}

// Hashed wraps v with the current settings of c.
func (c *HashedComparer[F]) Hashed(v F) Hashed[F] {
	return NewHashed(v, c.margin, c.ulps, c.scale)
}

func assertFloat[F Float](v any) (F, error) {
	x, ok := v.(F)
	if !ok {
		var zero F
		return zero, fmt.Errorf("%w: argument must be of type %T, got %T", ErrTypeMismatch, zero, v)
	}
	return x, nil
}

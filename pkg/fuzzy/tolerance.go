package fuzzy

import "math"

// Tolerance bundles the settings of a comparison independently of precision,
// so it can be read from configuration and applied to float32 or float64.
type Tolerance struct {
	MarginOfError float64
	ULPTolerance  int
	BoundaryScale int
}

// Normalize returns t with absolute tolerances and a boundary scale of at least 1.
func (t Tolerance) Normalize() Tolerance {
	return Tolerance{
		MarginOfError: math.Abs(t.MarginOfError),
		ULPTolerance:  int(absTolerance(t.ULPTolerance)),
		BoundaryScale: max(t.BoundaryScale, 1),
	}
}

// ComparerOf returns a Comparer configured from t.
func ComparerOf[F Float](t Tolerance) *Comparer[F] {
	return NewComparer(F(t.MarginOfError), t.ULPTolerance)
}

// HashedComparerOf returns a HashedComparer configured from t.
func HashedComparerOf[F Float](t Tolerance) *HashedComparer[F] {
	return NewHashedComparer(F(t.MarginOfError), t.ULPTolerance, t.BoundaryScale)
}

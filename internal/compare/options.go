// Package compare provides structural comparison of decoded JSON and YAML documents
// whose numeric leaves are compared with fuzzy floating-point equality.
package compare

import (
	"fmt"

	"github.com/AndreyAkinshin/fuzzy/pkg/fuzzy"
)

// ArrayOrder defines how arrays are compared.
type ArrayOrder string

const (
	ArrayOrderStrict    ArrayOrder = "strict"
	ArrayOrderUnordered ArrayOrder = "unordered"
)

// Options configures how documents are compared.
type Options struct {
	Tolerance    fuzzy.Tolerance
	Precision    int        // 32 or 64; anything else is treated as 64
	Hashed       bool       // use hash-compatible equality
	ArrayOrder   ArrayOrder // "strict" (default) or "unordered"
	NaNEqualsNaN bool
}

// DefaultOptions returns the default comparison settings.
func DefaultOptions() Options {
	return Options{
		Tolerance:  fuzzy.Tolerance{MarginOfError: 1e-9, ULPTolerance: 4, BoundaryScale: 1},
		Precision:  64,
		ArrayOrder: ArrayOrderStrict,
	}
}

// numberEqual returns the equality applied to finite numeric leaves.
func (o Options) numberEqual() func(a, b float64) bool {
	tol := o.Tolerance.Normalize()
	switch {
	case o.Precision == 32 && o.Hashed:
		c := fuzzy.HashedComparerOf[float32](tol)
		return func(a, b float64) bool { return c.Equal(float32(a), float32(b)) }
	case o.Precision == 32:
		c := fuzzy.ComparerOf[float32](tol)
		return func(a, b float64) bool { return c.Equal(float32(a), float32(b)) }
	case o.Hashed:
		return fuzzy.HashedComparerOf[float64](tol).Equal
	default:
		return fuzzy.ComparerOf[float64](tol).Equal
	}
}

// describe summarizes the tolerance for mismatch messages, e.g. "±1e-09 (4 ulp)".
func (o Options) describe() string {
	tol := o.Tolerance.Normalize()
	desc := fmt.Sprintf("±%g (%d ulp)", tol.MarginOfError, tol.ULPTolerance)
	if o.Precision == 32 {
		desc += " float32"
	}
	if o.Hashed {
		desc += fmt.Sprintf(" x%d", tol.BoundaryScale)
	}
	return desc
}

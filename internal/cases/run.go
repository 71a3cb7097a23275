package cases

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/AndreyAkinshin/fuzzy/internal/compare"
	"github.com/AndreyAkinshin/fuzzy/pkg/fuzzy"
)

// Operations lists the values accepted for the "op" input field.
var Operations = []string{"eq", "cmp", "ulp", "dist", "bits", "boundary", "same_boundary", "hashed_eq"}

// ErrorMixedSign is the output of a "dist" case whose operands differ in sign.
const ErrorMixedSign = "mixed_sign"

// exact compares actual outputs with expected outputs bit for bit, except that
// NaN matches NaN.
var exact = compare.Options{Precision: 64, ArrayOrder: compare.ArrayOrderStrict, NaNEqualsNaN: true}

// params are the decoded inputs of a case.
type params struct {
	op     string
	a, b   float64
	margin float64
	ulps   int
	scale  int
}

// Run evaluates c and compares the result with its expected output.
func Run(c *Case, d Defaults) Result {
	r := Result{Case: c}
	if c.Skip {
		r.Skipped = true
		return r
	}

	actual, err := Evaluate(c.Input, d)
	if err != nil {
		r.Error = err
		return r
	}
	r.Actual = actual

	r.Passed, r.Diff = compare.Compare(c.Output, actual, exact)
	return r
}

// RunSuite evaluates every case of a suite in order.
func RunSuite(suite string, cases []Case, d Defaults) SuiteResult {
	sr := SuiteResult{Suite: suite}
	for i := range cases {
		r := Run(&cases[i], d)
		switch {
		case r.Skipped:
			sr.Skipped++
		case r.Passed:
			sr.Passed++
		default:
			sr.Failed++
		}
		sr.Results = append(sr.Results, r)
	}
	return sr
}

// Evaluate performs the operation described by input and returns its output in
// the form case files use: booleans for predicates, numbers for comparisons,
// ULPs and widths, a hexadecimal string for bit patterns, and
// {"error": "mixed_sign"} for a failed distance.
func Evaluate(input map[string]interface{}, d Defaults) (interface{}, error) {
	p, precision, err := decode(input, d)
	if err != nil {
		return nil, err
	}
	if precision == 32 {
		return evaluate(p, float32(p.a), float32(p.b), float32(p.margin))
	}
	return evaluate(p, p.a, p.b, p.margin)
}

func evaluate[F fuzzy.Float](p params, a, b, margin F) (interface{}, error) {
	switch p.op {
	case "eq":
		return fuzzy.AreEqual(a, b, margin, p.ulps), nil
	case "cmp":
		return float64(fuzzy.Compare(a, b, margin, p.ulps)), nil
	case "ulp":
		return float64(fuzzy.ULP(a)), nil
	case "dist":
		n, err := fuzzy.ULPDistance(a, b)
		if errors.Is(err, fuzzy.ErrMixedSign) {
			return map[string]interface{}{"error": ErrorMixedSign}, nil
		}
		return float64(n), err
	case "bits":
		width := fuzzy.LayoutOf[F]().Width
		mask := uint64(math.MaxUint64) >> (64 - width)
		return fmt.Sprintf("0x%0*x", width/4, uint64(fuzzy.Bits(a))&mask), nil
	case "boundary":
		return float64(fuzzy.Boundary(a, margin, p.ulps, p.scale)), nil
	case "same_boundary":
		return fuzzy.InSameBoundary(a, b, margin, p.ulps, p.scale), nil
	case "hashed_eq":
		return fuzzy.NewHashed(a, margin, p.ulps, p.scale).EqualRaw(b), nil
	default:
		return nil, fmt.Errorf("unknown op %q", p.op)
	}
}

func decode(input map[string]interface{}, d Defaults) (params, int, error) {
	p := params{
		margin: d.Tolerance.MarginOfError,
		ulps:   d.Tolerance.ULPTolerance,
		scale:  d.Tolerance.BoundaryScale,
	}
	precision := d.Precision

	op, ok := input["op"].(string)
	if !ok {
		return p, 0, fmt.Errorf("\"op\" must be a string")
	}
	p.op = op

	var err error
	if p.a, err = number(input, "a", true); err != nil {
		return p, 0, err
	}
	if p.b, err = number(input, "b", needsB(op)); err != nil {
		return p, 0, err
	}
	if _, ok := input["margin_of_error"]; ok {
		if p.margin, err = number(input, "margin_of_error", true); err != nil {
			return p, 0, err
		}
	}
	for key, dst := range map[string]*int{"ulp_tolerance": &p.ulps, "boundary_scale": &p.scale, "precision": &precision} {
		if _, ok := input[key]; !ok {
			continue
		}
		if *dst, err = integer(input, key); err != nil {
			return p, 0, err
		}
	}

	if precision != 32 && precision != 64 {
		return p, 0, fmt.Errorf("\"precision\" must be 32 or 64, got %d", precision)
	}
	return p, precision, nil
}

func needsB(op string) bool {
	switch op {
	case "ulp", "bits", "boundary":
		return false
	}
	return true
}

// number reads a numeric operand. Strings are parsed with strconv, so NaN,
// Infinity and hexadecimal floats such as 0x1p-1074 are accepted.
func number(input map[string]interface{}, key string, required bool) (float64, error) {
	switch v := input[key].(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%q: invalid number %q", key, v)
		}
		return f, nil
	case nil:
		if required {
			return 0, fmt.Errorf("missing required field %q", key)
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%q must be a number, got %T", key, v)
	}
}

func integer(input map[string]interface{}, key string) (int, error) {
	f, ok := input[key].(float64)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%q must be an integer", key)
	}
	return int(f), nil
}

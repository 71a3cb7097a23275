package cases

import (
	"errors"
	"math"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/fuzzy/pkg/fuzzy"
)

var testDefaults = Defaults{
	Precision: 64,
	Tolerance: fuzzy.Tolerance{MarginOfError: 1e-9, ULPTolerance: 4, BoundaryScale: 1},
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]interface{}
		want  interface{}
	}{
		{"eq with defaults", map[string]interface{}{"op": "eq", "a": 1.0, "b": 1.0000000001}, true},
		{"eq override", map[string]interface{}{"op": "eq", "a": 1.0, "b": 1.0000000001, "margin_of_error": 0.0, "ulp_tolerance": 0.0}, false},
		{"eq NaN strings", map[string]interface{}{"op": "eq", "a": "NaN", "b": "NaN"}, true},
		{"cmp", map[string]interface{}{"op": "cmp", "a": 2.0, "b": 1.0}, 1.0},
		{"ulp float32", map[string]interface{}{"op": "ulp", "a": 1.0, "precision": 32.0}, float64(float32(0x1p-23))},
		{"dist", map[string]interface{}{"op": "dist", "a": "0x1p-1074", "b": "0x1p-1073"}, 1.0},
		{"dist mixed sign", map[string]interface{}{"op": "dist", "a": -1.0, "b": 1.0}, map[string]interface{}{"error": ErrorMixedSign}},
		{"bits float64", map[string]interface{}{"op": "bits", "a": 2.0}, "0x4000000000000000"},
		{"bits float32 negative", map[string]interface{}{"op": "bits", "a": -1.0, "precision": 32.0}, "0xbf800000"},
		{"boundary", map[string]interface{}{"op": "boundary", "a": 1.0, "margin_of_error": 0.0, "ulp_tolerance": 3.0, "boundary_scale": 2.0}, 6.0},
		{"same boundary", map[string]interface{}{"op": "same_boundary", "a": 1.0, "b": 1.0}, true},
		{"hashed eq", map[string]interface{}{"op": "hashed_eq", "a": 0.0, "b": "-0"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.input, testDefaults)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			switch want := tt.want.(type) {
			case map[string]interface{}:
				m, ok := got.(map[string]interface{})
				if !ok || m["error"] != want["error"] {
					t.Errorf("Evaluate() = %v, want %v", got, want)
				}
			default:
				if got != want {
					t.Errorf("Evaluate() = %v (%T), want %v (%T)", got, got, want, want)
				}
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]interface{}
		wantErr string
	}{
		{"missing op", map[string]interface{}{"a": 1.0}, `"op" must be a string`},
		{"unknown op", map[string]interface{}{"op": "sqrt", "a": 1.0, "b": 1.0}, `unknown op "sqrt"`},
		{"missing a", map[string]interface{}{"op": "ulp"}, `missing required field "a"`},
		{"missing b", map[string]interface{}{"op": "eq", "a": 1.0}, `missing required field "b"`},
		{"bad number", map[string]interface{}{"op": "ulp", "a": "one"}, `invalid number "one"`},
		{"wrong type", map[string]interface{}{"op": "ulp", "a": true}, `"a" must be a number`},
		{"fractional ulps", map[string]interface{}{"op": "eq", "a": 1.0, "b": 1.0, "ulp_tolerance": 1.5}, `"ulp_tolerance" must be an integer`},
		{"bad precision", map[string]interface{}{"op": "ulp", "a": 1.0, "precision": 16.0}, `"precision" must be 32 or 64`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.input, testDefaults)
			if err == nil {
				t.Fatal("Evaluate() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		c          Case
		wantPassed bool
		wantSkip   bool
		wantErr    bool
	}{
		{
			name:       "passing",
			c:          Case{Input: map[string]interface{}{"op": "ulp", "a": 0.0}, Output: math.SmallestNonzeroFloat64},
			wantPassed: true,
		},
		{
			name:       "special string output",
			c:          Case{Input: map[string]interface{}{"op": "ulp", "a": "Inf"}, Output: "Infinity"},
			wantPassed: true,
		},
		{
			name: "failing",
			c:    Case{Input: map[string]interface{}{"op": "eq", "a": 1.0, "b": 2.0}, Output: true},
		},
		{
			name:     "skipped",
			c:        Case{Skip: true, Input: map[string]interface{}{"op": "bogus"}, Output: 1.0},
			wantSkip: true,
		},
		{
			name:    "evaluation error",
			c:       Case{Input: map[string]interface{}{"op": "bogus", "a": 1.0, "b": 1.0}, Output: 1.0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Run(&tt.c, testDefaults)
			if r.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v (diff: %s)", r.Passed, tt.wantPassed, r.Diff)
			}
			if r.Skipped != tt.wantSkip {
				t.Errorf("Skipped = %v, want %v", r.Skipped, tt.wantSkip)
			}
			if (r.Error != nil) != tt.wantErr {
				t.Errorf("Error = %v, wantErr %v", r.Error, tt.wantErr)
			}
			if !tt.wantPassed && !tt.wantSkip && !tt.wantErr && r.Diff == "" {
				t.Error("failing result has no diff")
			}
		})
	}
}

func TestRunSuite_Counts(t *testing.T) {
	cases := []Case{
		{Name: "pass", Input: map[string]interface{}{"op": "eq", "a": 1.0, "b": 1.0}, Output: true},
		{Name: "fail", Input: map[string]interface{}{"op": "eq", "a": 1.0, "b": 2.0}, Output: true},
		{Name: "error", Input: map[string]interface{}{"op": "eq"}, Output: true},
		{Name: "skip", Skip: true},
	}

	sr := RunSuite("mixed", cases, testDefaults)
	if sr.Suite != "mixed" || sr.Passed != 1 || sr.Failed != 2 || sr.Skipped != 1 {
		t.Errorf("RunSuite() = %+v, want 1 passed, 2 failed, 1 skipped", sr)
	}
	if len(sr.Results) != len(cases) {
		t.Errorf("len(Results) = %d, want %d", len(sr.Results), len(cases))
	}
}

func casesDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "test", "fixtures", "cases")
}

// TestReferenceSuites runs the shipped reference cases; each must pass under
// any defaults since every case fixes its own tolerances.
func TestReferenceSuites(t *testing.T) {
	suites, err := LoadAllSuites(casesDir(), DefaultPattern)
	if err != nil {
		t.Fatalf("LoadAllSuites() error = %v", err)
	}
	if len(suites) == 0 {
		t.Fatal("no reference suites found")
	}

	for name, cases := range suites {
		for i := range cases {
			c := &cases[i]
			t.Run(name+"/"+c.Name, func(t *testing.T) {
				r := Run(c, testDefaults)
				if r.Error != nil {
					t.Fatalf("%s: %v", c.Path, r.Error)
				}
				if !r.Passed {
					t.Errorf("%s: %s (got %v)", c.Description, r.Diff, r.Actual)
				}
			})
		}
	}
}

func TestEvaluate_MixedSignIsNotAnError(t *testing.T) {
	_, err := Evaluate(map[string]interface{}{"op": "dist", "a": "-0", "b": "0"}, testDefaults)
	if errors.Is(err, fuzzy.ErrMixedSign) {
		t.Errorf("Evaluate() surfaced %v, want it reported as output", err)
	}
}

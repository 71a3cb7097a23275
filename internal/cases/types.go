// Package cases runs suites of reference cases against the fuzzy comparison engine.
//
// A suite is a directory of JSON files. Each file holds one case: an input naming
// the operation and its operands, and the expected output.
//
//	{
//	  "description": "one ULP apart",
//	  "input": {"op": "eq", "a": 1, "b": 1.0000000000000002, "margin_of_error": 0, "ulp_tolerance": 1},
//	  "output": true
//	}
package cases

import "github.com/AndreyAkinshin/fuzzy/pkg/fuzzy"

// Case represents a single reference case loaded from JSON.
type Case struct {
	Name        string                 // Case name (from filename)
	Suite       string                 // Suite name (parent directory)
	Path        string                 // Full path to the case file
	Description string                 // Optional documentation
	Skip        bool                   // Skipped cases are reported but not evaluated
	Tags        []string               // Optional categorization
	Input       map[string]interface{} // Operation and operands
	Output      interface{}            // Expected output
}

// Defaults supplies the precision and tolerances for inputs that leave them out.
type Defaults struct {
	Precision int
	Tolerance fuzzy.Tolerance
}

// Result represents the result of evaluating a case.
type Result struct {
	Case    *Case
	Passed  bool
	Skipped bool
	Actual  interface{}
	Diff    string
	Error   error
}

// SuiteResult represents results for an entire suite.
type SuiteResult struct {
	Suite   string
	Results []Result
	Passed  int
	Failed  int
	Skipped int
}

package compare

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
)

// Difference is a single mismatch between two documents.
type Difference struct {
	Path    string // "root" for the top-level value, otherwise e.g. "a.b[2]"
	Message string
}

func (d Difference) String() string {
	return d.Path + ": " + d.Message
}

// Compare compares expected and actual and reports the first difference found.
func Compare(expected, actual interface{}, opts Options) (bool, string) {
	w := newWalker(opts, true)
	w.compareValues(expected, actual, "")
	if len(w.diffs) == 0 {
		return true, ""
	}
	return false, w.diffs[0].String()
}

// Diff compares expected and actual and returns every difference found.
// Map keys are visited in sorted order, so the result is deterministic.
func Diff(expected, actual interface{}, opts Options) []Difference {
	w := newWalker(opts, false)
	w.compareValues(expected, actual, "")
	return w.diffs
}

type walker struct {
	opts  Options
	equal func(a, b float64) bool
	first bool
	diffs []Difference
}

func newWalker(opts Options, first bool) *walker {
	return &walker{opts: opts, equal: opts.numberEqual(), first: first}
}

func (w *walker) fail(path, format string, args ...interface{}) {
	w.diffs = append(w.diffs, Difference{Path: pathStr(path), Message: fmt.Sprintf(format, args...)})
}

func (w *walker) done() bool {
	return w.first && len(w.diffs) > 0
}

// matches reports whether expected and actual compare equal without recording differences.
func (w *walker) matches(expected, actual interface{}) bool {
	sub := &walker{opts: w.opts, equal: w.equal, first: true}
	sub.compareValues(expected, actual, "")
	return len(sub.diffs) == 0
}

func (w *walker) compareValues(expected, actual interface{}, path string) {
	if expected == nil && actual == nil {
		return
	}
	if expected == nil || actual == nil {
		w.fail(path, "expected %v, got %v", format(expected), format(actual))
		return
	}

	// Numbers and special float strings ("NaN", "Infinity", "-Infinity") on either side.
	expNum, expIsNum := toNumber(expected)
	actNum, actIsNum := toNumber(actual)
	if expIsNum && actIsNum {
		w.compareFloats(expNum, actNum, path)
		return
	}
	if expIsNum {
		w.fail(path, "expected number, got %s", typeName(actual))
		return
	}

	switch exp := expected.(type) {
	case string:
		if act, ok := actual.(string); ok && exp == act {
			return
		}
		w.fail(path, "expected %q, got %v", exp, format(actual))
	case bool:
		if act, ok := actual.(bool); ok && exp == act {
			return
		}
		w.fail(path, "expected %v, got %v", exp, format(actual))
	case map[string]interface{}:
		w.compareMaps(exp, actual, path)
	case []interface{}:
		w.compareArrays(exp, actual, path)
	default:
		if !reflect.DeepEqual(expected, actual) {
			w.fail(path, "expected %v (%T), got %v (%T)", expected, expected, actual, actual)
		}
	}
}

func (w *walker) compareFloats(expected, actual float64, path string) {
	switch {
	case math.IsNaN(expected) && math.IsNaN(actual):
		if !w.opts.NaNEqualsNaN {
			w.fail(path, "NaN != NaN (set nan_equals_nan to allow)")
		}
		return
	case math.IsNaN(expected) || math.IsNaN(actual),
		math.IsInf(expected, 0) || math.IsInf(actual, 0):
		if expected != actual {
			w.fail(path, "expected %s, got %s", formatFloat(expected), formatFloat(actual))
		}
		return
	}

	if !w.equal(expected, actual) {
		w.fail(path, "expected %s, got %s (tolerance: %s)", formatFloat(expected), formatFloat(actual), w.opts.describe())
	}
}

func (w *walker) compareMaps(expected map[string]interface{}, actual interface{}, path string) {
	actMap, ok := actual.(map[string]interface{})
	if !ok {
		w.fail(path, "expected object, got %s", typeName(actual))
		return
	}

	for _, key := range sortedKeys(expected) {
		if _, ok := actMap[key]; !ok {
			w.fail(path, "missing key %q", key)
			if w.done() {
				return
			}
		}
	}
	for _, key := range sortedKeys(actMap) {
		if _, ok := expected[key]; !ok {
			w.fail(path, "unexpected key %q", key)
			if w.done() {
				return
			}
		}
	}

	for _, key := range sortedKeys(expected) {
		actVal, ok := actMap[key]
		if !ok {
			continue
		}
		keyPath := path + "." + key
		if path == "" {
			keyPath = key
		}
		w.compareValues(expected[key], actVal, keyPath)
		if w.done() {
			return
		}
	}
}

func (w *walker) compareArrays(expected []interface{}, actual interface{}, path string) {
	actArr, ok := actual.([]interface{})
	if !ok {
		w.fail(path, "expected array, got %s", typeName(actual))
		return
	}

	if len(expected) != len(actArr) {
		w.fail(path, "expected %d elements, got %d", len(expected), len(actArr))
		return
	}

	if w.opts.ArrayOrder == ArrayOrderUnordered {
		w.compareArraysUnordered(expected, actArr, path)
		return
	}

	for i := range expected {
		w.compareValues(expected[i], actArr[i], fmt.Sprintf("%s[%d]", path, i))
		if w.done() {
			return
		}
	}
}

// compareArraysUnordered greedily matches each expected element to the first
// unused actual element that compares equal.
func (w *walker) compareArraysUnordered(expected, actual []interface{}, path string) {
	matched := make([]bool, len(actual))

	for i, exp := range expected {
		found := false
		for j, act := range actual {
			if matched[j] {
				continue
			}
			if w.matches(exp, act) {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			w.fail(fmt.Sprintf("%s[%d]", path, i), "no matching element found for %v", format(exp))
			if w.done() {
				return
			}
		}
	}
}

// toNumber converts decoded numbers and special float strings to float64.
func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		return parseSpecialFloat(n)
	default:
		return 0, false
	}
}

func parseSpecialFloat(s string) (float64, bool) {
	switch s {
	case "NaN":
		return math.NaN(), true
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	return 0, false
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return fmt.Sprintf("%v", f)
}

func format(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", t)
	case float64:
		return formatFloat(t)
	}
	return fmt.Sprintf("%v", v)
}

func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	}
	if _, ok := toNumber(v); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

// pathStr formats a path for error messages.
// Returns "root" for empty path to indicate the top-level value.
func pathStr(path string) string {
	if path == "" {
		return "root"
	}
	return path
}

func sortedKeys(m map[string]interface{}) []string {
	return slices.Sorted(maps.Keys(m))
}

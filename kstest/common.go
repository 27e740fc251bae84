package kstest

import (
	"encoding/json"
	"strconv"

	"github.com/google/go-cmp/cmp"
)

// testT is the minimal testing interface used by kstest utilities.
type testT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
}

// require fails the test immediately if the condition is false.
func require(t testT, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

// check reports an error if the condition is false, but continues the
// test.
func check(t testT, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Errorf(format, args...)
	}
}

// Diff returns a human-readable diff between want and got, or the
// empty string if they are equal. Numeric values compare across types
// (an int 8080 equals json.Number("8080") as decoded from a file).
func Diff(want, got any) string {
	if ValuesEqual(got, want) {
		return ""
	}
	return cmp.Diff(want, got)
}

// ValuesEqual compares two values, treating numeric types as equal
// when their numeric values match. Document parsers return json.Number
// or float64 depending on format, so tests seed plain ints and compare
// through this helper.
func ValuesEqual(got, want any) bool {
	if got == nil && want == nil {
		return true
	}
	if got == nil || want == nil {
		return false
	}

	gotNum, gotIsNum := toFloat64(got)
	wantNum, wantIsNum := toFloat64(want)
	if gotIsNum && wantIsNum {
		return gotNum == wantNum
	}

	return cmp.Equal(got, want)
}

// toFloat64 converts numeric types to float64 for comparison.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

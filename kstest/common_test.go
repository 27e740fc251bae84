package kstest

import (
	"encoding/json"
	"testing"
)

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		name      string
		got, want any
		equal     bool
	}{
		{name: "same int", got: 3, want: 3, equal: true},
		{name: "int vs float64", got: float64(3), want: 3, equal: true},
		{name: "int vs json.Number", got: json.Number("8080"), want: 8080, equal: true},
		{name: "different numbers", got: 1, want: 2, equal: false},
		{name: "strings", got: "a", want: "a", equal: true},
		{name: "number vs string", got: 1, want: "1", equal: false},
		{name: "both nil", got: nil, want: nil, equal: true},
		{name: "one nil", got: nil, want: 1, equal: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValuesEqual(tt.got, tt.want); got != tt.equal {
				t.Errorf("ValuesEqual(%v, %v) = %t, want %t", tt.got, tt.want, got, tt.equal)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	if diff := Diff(8080, json.Number("8080")); diff != "" {
		t.Errorf("Diff of numerically equal values = %q, want empty", diff)
	}
	if diff := Diff("want", "got"); diff == "" {
		t.Error("Diff of unequal values returned empty string")
	}
}

// Package calc provides reductions over a chain's contents.
//
// Reductions on a mapping are ambiguous: iterating a map visits keys,
// but calculations usually care about values, and a value-only
// reduction loses the key it belongs to. Each helper here states
// explicitly which it traverses. Min, Max, and Rank operate on
// (value, key) pairs - the value is compared first and the key breaks
// ties, so duplicate values resolve deterministically (smallest key
// wins for Min, largest for Max). MinKey and MaxKey reduce over keys
// alone.
//
// Values of mixed numeric types compare exactly: ints, floats, and
// json.Number (as produced by the JSON parser) are lifted to
// arbitrary-precision decimals rather than truncated to float64.
package calc

import (
	"cmp"
	"errors"
	"slices"

	"github.com/yacchi/kasane"
)

// ErrNoEntries is returned by reductions over a chain with no keys.
var ErrNoEntries = errors.New("calc: no entries to reduce")

// Min returns the entry with the smallest (value, key) pair. Values
// are compared first; on equal values the smaller key wins.
//
// Example:
//
//	prices := kasane.Over(map[string]float64{
//	    "ACME": 45.23, "AAPL": 612.78, "IBM": 205.55,
//	    "HPQ": 37.20, "FB": 10.75,
//	})
//	e, _ := calc.Min(prices) // (FB, 10.75)
func Min[K cmp.Ordered, V any](c kasane.Chain[K, V]) (kasane.Entry[K, V], error) {
	return reduce(c, func(cmp int) bool { return cmp < 0 })
}

// Max returns the entry with the largest (value, key) pair. Values
// are compared first; on equal values the larger key wins.
func Max[K cmp.Ordered, V any](c kasane.Chain[K, V]) (kasane.Entry[K, V], error) {
	return reduce(c, func(cmp int) bool { return cmp > 0 })
}

// reduce scans the chain's effective entries keeping the one the
// better predicate prefers, judging by (value, key) comparison.
func reduce[K cmp.Ordered, V any](c kasane.Chain[K, V], better func(int) bool) (kasane.Entry[K, V], error) {
	entries := c.Entries()
	if len(entries) == 0 {
		return kasane.Entry[K, V]{}, ErrNoEntries
	}

	best := entries[0]
	for _, e := range entries[1:] {
		r, err := comparePairs(e, best)
		if err != nil {
			return kasane.Entry[K, V]{}, err
		}
		if better(r) {
			best = e
		}
	}
	return best, nil
}

// Rank returns the chain's effective entries sorted ascending by
// (value, key) pair.
func Rank[K cmp.Ordered, V any](c kasane.Chain[K, V]) ([]kasane.Entry[K, V], error) {
	entries := c.Entries()

	var cmpErr error
	slices.SortStableFunc(entries, func(a, b kasane.Entry[K, V]) int {
		r, err := comparePairs(a, b)
		if err != nil && cmpErr == nil {
			cmpErr = err
		}
		return r
	})
	if cmpErr != nil {
		return nil, cmpErr
	}
	return entries, nil
}

// MinKey reduces over keys only and returns the smallest one. Note
// that this ignores values entirely - use Min for the entry with the
// smallest value.
func MinKey[K cmp.Ordered, V any](c kasane.Chain[K, V]) (K, error) {
	keys := c.Keys()
	if len(keys) == 0 {
		var zero K
		return zero, ErrNoEntries
	}
	return slices.Min(keys), nil
}

// MaxKey reduces over keys only and returns the largest one.
func MaxKey[K cmp.Ordered, V any](c kasane.Chain[K, V]) (K, error) {
	keys := c.Keys()
	if len(keys) == 0 {
		var zero K
		return zero, ErrNoEntries
	}
	return slices.Max(keys), nil
}

// comparePairs orders two entries as (value, key) pairs: values first,
// keys as tie-break.
func comparePairs[K cmp.Ordered, V any](a, b kasane.Entry[K, V]) (int, error) {
	r, err := CompareValues(a.Value, b.Value)
	if err != nil {
		return 0, err
	}
	if r != 0 {
		return r, nil
	}
	return cmp.Compare(a.Key, b.Key), nil
}

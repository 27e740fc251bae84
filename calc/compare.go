package calc

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// IncomparableError is returned when two values have no defined
// ordering (e.g. a string against a number).
type IncomparableError struct {
	A any
	B any
}

func (e *IncomparableError) Error() string {
	return fmt.Sprintf("cannot compare %T with %T", e.A, e.B)
}

// CompareValues orders two dynamically-typed values, returning -1, 0,
// or 1.
//
// Numbers of any Go numeric type, json.Number, and *apd.Decimal
// compare exactly via arbitrary-precision decimals, so int(1),
// float64(1.0), and json.Number("1.0") are all equal. Strings compare
// lexically and bools order false before true. Anything else, or a
// mixed pairing outside the numeric tower, yields an
// IncomparableError.
func CompareValues(a, b any) (int, error) {
	da, aok := toDecimal(a)
	db, bok := toDecimal(b)
	if aok && bok {
		return da.Cmp(db), nil
	}
	if aok != bok {
		return 0, &IncomparableError{A: a, B: b}
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv), nil
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0, nil
			case !av:
				return -1, nil
			default:
				return 1, nil
			}
		}
	}
	return 0, &IncomparableError{A: a, B: b}
}

// toDecimal lifts a numeric value to an exact decimal.
func toDecimal(v any) (*apd.Decimal, bool) {
	switch n := v.(type) {
	case int:
		return apd.New(int64(n), 0), true
	case int8:
		return apd.New(int64(n), 0), true
	case int16:
		return apd.New(int64(n), 0), true
	case int32:
		return apd.New(int64(n), 0), true
	case int64:
		return apd.New(n, 0), true
	case uint:
		return uintDecimal(uint64(n))
	case uint8:
		return apd.New(int64(n), 0), true
	case uint16:
		return apd.New(int64(n), 0), true
	case uint32:
		return apd.New(int64(n), 0), true
	case uint64:
		return uintDecimal(n)
	case float32:
		return floatDecimal(float64(n))
	case float64:
		return floatDecimal(n)
	case json.Number:
		d, _, err := apd.NewFromString(n.String())
		if err != nil {
			return nil, false
		}
		return d, true
	case *apd.Decimal:
		return n, true
	default:
		return nil, false
	}
}

func uintDecimal(n uint64) (*apd.Decimal, bool) {
	d, _, err := apd.NewFromString(strconv.FormatUint(n, 10))
	if err != nil {
		return nil, false
	}
	return d, true
}

func floatDecimal(f float64) (*apd.Decimal, bool) {
	d := new(apd.Decimal)
	if _, err := d.SetFloat64(f); err != nil {
		return nil, false
	}
	return d, true
}

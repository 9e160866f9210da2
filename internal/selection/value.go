package selection

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// toIndex converts a plain-mode value to a list index.
// Integers, integral floats and numeric strings are accepted.
func toIndex(v Value) (int, bool) {
	n, ok := toNumber(v)
	if !ok || n != math.Trunc(n) || math.IsInf(n, 0) {
		return 0, false
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

func toNumber(v Value) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case float64:
		return n, !math.IsNaN(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// looseEqual compares a lookup key with a selection value. Numbers and
// numeric strings compare by value ("2" equals 2); anything else falls
// back to its string form. nil never matches.
func looseEqual(a, b Value) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == tb && ta.Comparable() && a == b {
		return true
	}
	na, okA := toNumber(a)
	nb, okB := toNumber(b)
	if okA && okB {
		return na == nb
	}
	if okA != okB {
		// a number never equals a non-numeric string
		_, aStr := a.(string)
		_, bStr := b.(string)
		if aStr || bStr {
			return false
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// sameValue reports whether two selection values are interchangeable.
func sameValue(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return looseEqual(a, b)
}

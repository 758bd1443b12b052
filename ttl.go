package ttlmemo

import (
	"fmt"
	"math"
	"reflect"
)

// ParseTTL accepts a TTL that arrives untyped, for example from a decoded
// document. Any integer kind that fits in an int is accepted, negative values
// included. Floats are rejected even when integral, as are strings of digits.
func ParseTTL(v any) (int, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < math.MinInt || n > math.MaxInt {
			return 0, fmt.Errorf("%w: %d overflows int", ErrInvalidTTL, n)
		}
		return int(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n > math.MaxInt {
			return 0, fmt.Errorf("%w: %d overflows int", ErrInvalidTTL, n)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("%w: got %T", ErrInvalidTTL, v)
}

package attr

import "strconv"

// String accepts any value.
func String(v string) (string, bool) {
	return v, true
}

// Int parses a base-10 int.
func Int(v string) (int, bool) {
	n, err := strconv.Atoi(v)
	return n, err == nil
}

// Uint32 parses a base-10 uint32.
func Uint32(v string) (uint32, bool) {
	n, err := strconv.ParseUint(v, 10, 32)
	return uint32(n), err == nil
}

// Float32 parses a float32.
func Float32(v string) (float32, bool) {
	f, err := strconv.ParseFloat(v, 32)
	return float32(f), err == nil
}

// Float64 parses a float64.
func Float64(v string) (float64, bool) {
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}

// Bool01 accepts exactly "1" or "0".
func Bool01(v string) (bool, bool) {
	switch v {
	case "1":
		return true, true
	case "0":
		return false, true
	default:
		return false, false
	}
}

// IntFlag parses an integer and reports whether it equals 1.
func IntFlag(v string) (bool, bool) {
	n, ok := Int(v)
	if !ok {
		return false, false
	}
	return n == 1, true
}

// NonZero parses an integer and reports whether it differs from 0.
func NonZero(v string) (bool, bool) {
	n, ok := Int(v)
	if !ok {
		return false, false
	}
	return n != 0, true
}

// Literal returns a converter that reports whether the value equals lit.
// It never rejects.
func Literal(lit string) Converter[bool] {
	return func(v string) (bool, bool) {
		return v == lit, true
	}
}

// Ptr lifts conv to produce a pointer, giving optional attributes a nil
// "absent" state.
func Ptr[T any](conv Converter[T]) Converter[*T] {
	return func(v string) (*T, bool) {
		out, ok := conv(v)
		if !ok {
			return nil, false
		}
		return &out, true
	}
}

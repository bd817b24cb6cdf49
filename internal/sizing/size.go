// Package sizing provides overflow-checked size arithmetic and conversions.
package sizing

import "math"

// ToInt converts a uint64 to int, returning overflowErr if it doesn't fit.
func ToInt(size uint64, overflowErr error) (int, error) {
	if size > uint64(math.MaxInt) {
		return 0, overflowErr
	}
	return int(size), nil
}

// AddUint64 adds two uint64 values, returning (result, false) on overflow.
func AddUint64(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// MulUint64 multiplies two uint64 values, returning (result, false) on overflow.
func MulUint64(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}

// Slice returns the bounds [off, off+n) as ints if they lie within a buffer
// of the given size. ok is false when the range overflows or exceeds size.
func Slice(off, n uint64, size int) (lo, hi int, ok bool) {
	end, ok := AddUint64(off, n)
	if !ok || size < 0 || end > uint64(size) {
		return 0, 0, false
	}
	return int(off), int(end), true //nolint:gosec // bounded by size above
}

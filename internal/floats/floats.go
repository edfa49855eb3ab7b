// Package floats holds the small generic helpers shared by the evaluators:
// evenly spaced sampling, closeness tests and range queries.
package floats

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Linspace returns n evenly spaced values over [start, stop], both ends
// included. n == 1 yields []T{start}; n <= 0 yields nil. The last value is
// exactly stop so anchor positions at the end of a range are hit exactly.
func Linspace[T constraints.Float](start, stop T, n int) []T {
	if n <= 0 {
		return nil
	}
	out := make([]T, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / T(n-1)
	for i := range out {
		out[i] = start + T(i)*step
	}
	out[n-1] = stop

	return out
}

// Arange returns the integers in [start, stop] as floats.
func Arange[T constraints.Float](start, stop int) []T {
	if stop < start {
		return nil
	}
	out := make([]T, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		out = append(out, T(i))
	}

	return out
}

// IsClose reports |a-b| <= atol + rtol*|b|, the numpy isclose relation.
// NaN is never close to anything.
func IsClose[T constraints.Float](a, b, rtol, atol T) bool {
	if a == b {
		return true
	}
	d := a - b
	if d < 0 {
		d = -d
	}
	ab := b
	if ab < 0 {
		ab = -ab
	}

	return d <= atol+rtol*ab
}

// MinMax returns the smallest and largest non-NaN values of xs.
// ok is false when xs holds no comparable value.
func MinMax[T constraints.Float](xs []T) (lo, hi T, ok bool) {
	for _, x := range xs {
		if math.IsNaN(float64(x)) {
			continue
		}
		if !ok {
			lo, hi, ok = x, x, true
			continue
		}
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}

	return lo, hi, ok
}

// Clone returns a copy of xs (nil stays nil).
func Clone[T any](xs []T) []T {
	if xs == nil {
		return nil
	}
	out := make([]T, len(xs))
	copy(out, xs)

	return out
}

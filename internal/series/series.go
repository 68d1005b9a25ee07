package series

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Series is an immutable ordered sequence of samples, index 0 being the
// oldest. Unavailable samples are NaN. The zero value is an empty Series.
type Series[T constraints.Float] struct {
	values []T
}

// Float64 is the Series instantiation used by indicators and adapters.
type Float64 = Series[float64]

// New creates a Series from a copy of values.
func New[T constraints.Float](values []T) Series[T] {
	v := make([]T, len(values))
	copy(v, values)
	return Series[T]{values: v}
}

// Full creates a Series of length n where every sample is v.
func Full[T constraints.Float](n int, v T) Series[T] {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}
	return Series[T]{values: out}
}

// NA creates a Series of length n where every sample is unavailable.
func NA[T constraints.Float](n int) Series[T] {
	return Full(n, nan[T]())
}

func nan[T constraints.Float]() T {
	return T(math.NaN())
}

func isNaN[T constraints.Float](v T) bool {
	return v != v
}

// Len returns the number of samples.
func (s Series[T]) Len() int {
	return len(s.values)
}

// At returns the sample at index i. It panics if i is out of range.
func (s Series[T]) At(i int) T {
	return s.values[i]
}

// IsNA reports whether the sample at index i is unavailable.
func (s Series[T]) IsNA(i int) bool {
	return isNaN(s.values[i])
}

// Last returns the most recent sample, or NaN for an empty Series.
func (s Series[T]) Last() T {
	if len(s.values) == 0 {
		return nan[T]()
	}
	return s.values[len(s.values)-1]
}

// Values returns a copy of the samples.
func (s Series[T]) Values() []T {
	out := make([]T, len(s.values))
	copy(out, s.values)
	return out
}

// Float64s returns a copy of the samples widened to float64.
func (s Series[T]) Float64s() []float64 {
	out := make([]float64, len(s.values))
	for i, v := range s.values {
		out[i] = float64(v)
	}
	return out
}

// Equal reports whether both series hold the same samples. Two unavailable
// samples compare equal.
func (s Series[T]) Equal(o Series[T]) bool {
	if len(s.values) != len(o.values) {
		return false
	}
	for i, v := range s.values {
		w := o.values[i]
		if isNaN(v) && isNaN(w) {
			continue
		}
		if v != w {
			return false
		}
	}
	return true
}

// CountNA returns the number of unavailable samples.
func (s Series[T]) CountNA() int {
	n := 0
	for _, v := range s.values {
		if isNaN(v) {
			n++
		}
	}
	return n
}

// FirstValid returns the index of the first available sample, or -1.
func (s Series[T]) FirstValid() int {
	for i, v := range s.values {
		if !isNaN(v) {
			return i
		}
	}
	return -1
}

// ReplaceNA returns a copy where every unavailable sample is replaced by v.
func (s Series[T]) ReplaceNA(v T) Series[T] {
	out := make([]T, len(s.values))
	for i, x := range s.values {
		if isNaN(x) {
			out[i] = v
		} else {
			out[i] = x
		}
	}
	return Series[T]{values: out}
}

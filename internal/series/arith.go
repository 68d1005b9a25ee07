package series

import (
	"math"

	"golang.org/x/exp/constraints"
)

func (s Series[T]) zip(o Series[T], op func(a, b T) T) Series[T] {
	mustSameLen(len(s.values), len(o.values))
	out := make([]T, len(s.values))
	for i, a := range s.values {
		b := o.values[i]
		if isNaN(a) || isNaN(b) {
			out[i] = nan[T]()
			continue
		}
		out[i] = op(a, b)
	}
	return Series[T]{values: out}
}

func (s Series[T]) apply(op func(v T) T) Series[T] {
	out := make([]T, len(s.values))
	for i, v := range s.values {
		if isNaN(v) {
			out[i] = v
			continue
		}
		out[i] = op(v)
	}
	return Series[T]{values: out}
}

func add[T constraints.Float](a, b T) T { return a + b }
func sub[T constraints.Float](a, b T) T { return a - b }
func mul[T constraints.Float](a, b T) T { return a * b }

func div[T constraints.Float](a, b T) T {
	if b == 0 {
		return nan[T]()
	}
	return a / b
}

// Add returns s + o.
func (s Series[T]) Add(o Series[T]) Series[T] { return s.zip(o, add[T]) }

// Sub returns s - o.
func (s Series[T]) Sub(o Series[T]) Series[T] { return s.zip(o, sub[T]) }

// Mul returns s * o.
func (s Series[T]) Mul(o Series[T]) Series[T] { return s.zip(o, mul[T]) }

// Div returns s / o. Division by zero is unavailable.
func (s Series[T]) Div(o Series[T]) Series[T] { return s.zip(o, div[T]) }

// AddScalar returns s + v.
func (s Series[T]) AddScalar(v T) Series[T] {
	return s.zip(Full(len(s.values), v), add[T])
}

// SubScalar returns s - v.
func (s Series[T]) SubScalar(v T) Series[T] {
	return s.zip(Full(len(s.values), v), sub[T])
}

// MulScalar returns s * v.
func (s Series[T]) MulScalar(v T) Series[T] {
	return s.zip(Full(len(s.values), v), mul[T])
}

// DivScalar returns s / v.
func (s Series[T]) DivScalar(v T) Series[T] {
	return s.zip(Full(len(s.values), v), div[T])
}

// Rsub returns v - s.
func (s Series[T]) Rsub(v T) Series[T] {
	return Full(len(s.values), v).zip(s, sub[T])
}

// Rdiv returns v / s.
func (s Series[T]) Rdiv(v T) Series[T] {
	return Full(len(s.values), v).zip(s, div[T])
}

// Neg returns -s.
func (s Series[T]) Neg() Series[T] {
	return s.apply(func(v T) T { return -v })
}

// Abs returns |s|.
func (s Series[T]) Abs() Series[T] {
	return s.apply(func(v T) T {
		if v < 0 {
			return -v
		}
		return v
	})
}

// Sqrt returns the square root of s. Negative samples are unavailable.
func (s Series[T]) Sqrt() Series[T] {
	return s.apply(func(v T) T {
		if v < 0 {
			return nan[T]()
		}
		return T(math.Sqrt(float64(v)))
	})
}

// Log returns the natural logarithm of s. Non-positive samples are unavailable.
func (s Series[T]) Log() Series[T] {
	return s.apply(func(v T) T {
		if v <= 0 {
			return nan[T]()
		}
		return T(math.Log(float64(v)))
	})
}

// Exp returns e**s.
func (s Series[T]) Exp() Series[T] {
	return s.apply(func(v T) T { return T(math.Exp(float64(v))) })
}

// Pow returns s**p.
func (s Series[T]) Pow(p T) Series[T] {
	return s.apply(func(v T) T { return T(math.Pow(float64(v), float64(p))) })
}

// Sign returns -1, 0 or 1 for each sample.
func (s Series[T]) Sign() Series[T] {
	return s.apply(func(v T) T {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
		return 0
	})
}

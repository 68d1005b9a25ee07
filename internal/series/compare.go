package series

import (
	"math"

	"golang.org/x/exp/constraints"
)

func (s Series[T]) compare(o Series[T], op func(a, b T) bool) Mask {
	mustSameLen(len(s.values), len(o.values))
	out := make([]bool, len(s.values))
	for i, a := range s.values {
		b := o.values[i]
		if isNaN(a) || isNaN(b) {
			continue
		}
		out[i] = op(a, b)
	}
	return Mask{values: out}
}

func (s Series[T]) compareScalar(v T, op func(a, b T) bool) Mask {
	return s.compare(Full(len(s.values), v), op)
}

// Gt returns s > o. Unavailable samples compare false.
func (s Series[T]) Gt(o Series[T]) Mask {
	return s.compare(o, func(a, b T) bool { return a > b })
}

// Ge returns s >= o.
func (s Series[T]) Ge(o Series[T]) Mask {
	return s.compare(o, func(a, b T) bool { return a >= b })
}

// Lt returns s < o.
func (s Series[T]) Lt(o Series[T]) Mask {
	return s.compare(o, func(a, b T) bool { return a < b })
}

// Le returns s <= o.
func (s Series[T]) Le(o Series[T]) Mask {
	return s.compare(o, func(a, b T) bool { return a <= b })
}

// Eq returns s == o.
func (s Series[T]) Eq(o Series[T]) Mask {
	return s.compare(o, func(a, b T) bool { return a == b })
}

// Ne returns s != o. Unlike the builtin operator it is false when either
// sample is unavailable.
func (s Series[T]) Ne(o Series[T]) Mask {
	return s.compare(o, func(a, b T) bool { return a != b })
}

// GtScalar returns s > v.
func (s Series[T]) GtScalar(v T) Mask {
	return s.compareScalar(v, func(a, b T) bool { return a > b })
}

// GeScalar returns s >= v.
func (s Series[T]) GeScalar(v T) Mask {
	return s.compareScalar(v, func(a, b T) bool { return a >= b })
}

// LtScalar returns s < v.
func (s Series[T]) LtScalar(v T) Mask {
	return s.compareScalar(v, func(a, b T) bool { return a < b })
}

// LeScalar returns s <= v.
func (s Series[T]) LeScalar(v T) Mask {
	return s.compareScalar(v, func(a, b T) bool { return a <= b })
}

// EqScalar returns s == v.
func (s Series[T]) EqScalar(v T) Mask {
	return s.compareScalar(v, func(a, b T) bool { return a == b })
}

// NeScalar returns s != v.
func (s Series[T]) NeScalar(v T) Mask {
	return s.compareScalar(v, func(a, b T) bool { return a != b })
}

// crossed evaluates fires(prevA, prevB, curA, curB) at every index with a
// predecessor and four available samples.
func (s Series[T]) crossed(o Series[T], fires func(pa, pb, ca, cb T) bool) Mask {
	mustSameLen(len(s.values), len(o.values))
	out := make([]bool, len(s.values))
	for i := 1; i < len(s.values); i++ {
		pa, pb := s.values[i-1], o.values[i-1]
		ca, cb := s.values[i], o.values[i]
		if isNaN(pa) || isNaN(pb) || isNaN(ca) || isNaN(cb) {
			continue
		}
		out[i] = fires(pa, pb, ca, cb)
	}
	return Mask{values: out}
}

func crossesOver[T constraints.Float](pa, pb, ca, cb T) bool  { return pa <= pb && ca > cb }
func crossesUnder[T constraints.Float](pa, pb, ca, cb T) bool { return pa >= pb && ca < cb }

// CrossOver fires at i when s[i-1] <= o[i-1] and s[i] > o[i].
func (s Series[T]) CrossOver(o Series[T]) Mask {
	return s.crossed(o, crossesOver[T])
}

// CrossUnder fires at i when s[i-1] >= o[i-1] and s[i] < o[i].
func (s Series[T]) CrossUnder(o Series[T]) Mask {
	return s.crossed(o, crossesUnder[T])
}

// Cross fires on either a cross over or a cross under.
func (s Series[T]) Cross(o Series[T]) Mask {
	return s.crossed(o, func(pa, pb, ca, cb T) bool {
		return crossesOver(pa, pb, ca, cb) || crossesUnder(pa, pb, ca, cb)
	})
}

// CrossOverScalar fires when s crosses above the constant line v.
func (s Series[T]) CrossOverScalar(v T) Mask {
	return s.CrossOver(Full(len(s.values), v))
}

// CrossUnderScalar fires when s crosses below the constant line v.
func (s Series[T]) CrossUnderScalar(v T) Mask {
	return s.CrossUnder(Full(len(s.values), v))
}

// CrossScalar fires when s crosses the constant line v in either direction.
func (s Series[T]) CrossScalar(v T) Mask {
	return s.Cross(Full(len(s.values), v))
}

// Max returns the pointwise maximum. Unavailable samples propagate.
func (s Series[T]) Max(o Series[T]) Series[T] {
	return s.zip(o, func(a, b T) T { return T(math.Max(float64(a), float64(b))) })
}

// Min returns the pointwise minimum. Unavailable samples propagate.
func (s Series[T]) Min(o Series[T]) Series[T] {
	return s.zip(o, func(a, b T) T { return T(math.Min(float64(a), float64(b))) })
}

// MaxScalar returns the pointwise maximum of s and v.
func (s Series[T]) MaxScalar(v T) Series[T] {
	return s.Max(Full(len(s.values), v))
}

// MinScalar returns the pointwise minimum of s and v.
func (s Series[T]) MinScalar(v T) Series[T] {
	return s.Min(Full(len(s.values), v))
}

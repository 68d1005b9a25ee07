package series

import "golang.org/x/exp/constraints"

// Mask is an immutable boolean sequence. A position may be missing, which
// reads as false. Comparators never produce missing positions.
type Mask struct {
	values  []bool
	missing []bool // nil when nothing is missing
}

// NewMask creates a Mask from a copy of values.
func NewMask(values []bool) Mask {
	v := make([]bool, len(values))
	copy(v, values)
	return Mask{values: v}
}

// NewMaskWithMissing creates a Mask where missing[i] marks position i as
// missing. Both slices must have the same length.
func NewMaskWithMissing(values, missing []bool) Mask {
	mustSameLen(len(values), len(missing))
	m := NewMask(values)
	m.missing = make([]bool, len(missing))
	copy(m.missing, missing)
	for i, na := range m.missing {
		if na {
			m.values[i] = false
		}
	}
	return m
}

// Len returns the number of positions.
func (m Mask) Len() int {
	return len(m.values)
}

// At returns the value at index i. Missing positions read false.
func (m Mask) At(i int) bool {
	return m.values[i]
}

// IsNA reports whether position i is missing.
func (m Mask) IsNA(i int) bool {
	return m.missing != nil && m.missing[i]
}

// Bools returns a copy of the values with missing positions as false.
func (m Mask) Bools() []bool {
	out := make([]bool, len(m.values))
	copy(out, m.values)
	return out
}

// Count returns the number of true positions.
func (m Mask) Count() int {
	n := 0
	for _, v := range m.values {
		if v {
			n++
		}
	}
	return n
}

// Last returns the most recent value, false for an empty Mask.
func (m Mask) Last() bool {
	if len(m.values) == 0 {
		return false
	}
	return m.values[len(m.values)-1]
}

func (m Mask) combine(o Mask, op func(a, b bool) bool) Mask {
	mustSameLen(len(m.values), len(o.values))
	out := Mask{values: make([]bool, len(m.values))}
	if m.missing != nil || o.missing != nil {
		out.missing = make([]bool, len(m.values))
	}
	for i := range m.values {
		if m.IsNA(i) || o.IsNA(i) {
			out.missing[i] = true
			continue
		}
		out.values[i] = op(m.values[i], o.values[i])
	}
	return out
}

// And returns m && o. A position missing in either operand is missing.
func (m Mask) And(o Mask) Mask {
	return m.combine(o, func(a, b bool) bool { return a && b })
}

// Or returns m || o. A position missing in either operand is missing.
func (m Mask) Or(o Mask) Mask {
	return m.combine(o, func(a, b bool) bool { return a || b })
}

// Not returns !m. Missing positions stay missing.
func (m Mask) Not() Mask {
	out := Mask{values: make([]bool, len(m.values))}
	if m.missing != nil {
		out.missing = make([]bool, len(m.missing))
		copy(out.missing, m.missing)
	}
	for i, v := range m.values {
		if !out.IsNA(i) {
			out.values[i] = !v
		}
	}
	return out
}

// Select picks a[i] where m is true and b[i] where it is false. Missing
// positions are unavailable.
func Select[T constraints.Float](m Mask, a, b Series[T]) Series[T] {
	mustSameLen(m.Len(), a.Len())
	mustSameLen(m.Len(), b.Len())
	out := make([]T, m.Len())
	for i, v := range m.values {
		switch {
		case m.IsNA(i):
			out[i] = nan[T]()
		case v:
			out[i] = a.values[i]
		default:
			out[i] = b.values[i]
		}
	}
	return Series[T]{values: out}
}

package series

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Shift moves every sample n positions forward: out[i] = s[i-n]. The first n
// positions are unavailable; use ReplaceNA to fill them.
func (s Series[T]) Shift(n int) Series[T] {
	mustOffset(n)
	out := make([]T, len(s.values))
	for i := range out {
		if i < n {
			out[i] = nan[T]()
			continue
		}
		out[i] = s.values[i-n]
	}
	return Series[T]{values: out}
}

// Change returns s[i] - s[i-n]. The first n positions are zero, not
// unavailable.
func (s Series[T]) Change(n int) Series[T] {
	mustOffset(n)
	out := make([]T, len(s.values))
	for i := n; i < len(out); i++ {
		out[i] = s.values[i] - s.values[i-n]
	}
	return Series[T]{values: out}
}

// CumSum returns the running total from index 0. Unavailable samples
// contribute zero, so every output position is defined.
func (s Series[T]) CumSum() Series[T] {
	out := make([]T, len(s.values))
	var acc T
	for i, v := range s.values {
		if !isNaN(v) {
			acc += v
		}
		out[i] = acc
	}
	return Series[T]{values: out}
}

// expanding applies agg to the trailing window ending at each index. During
// the first period-1 samples the window holds every sample seen so far. A
// window holding an unavailable sample is unavailable, and so is every
// position when period exceeds the length.
func (s Series[T]) expanding(period int, agg func(w []T) T) Series[T] {
	mustPeriod(period)
	if period > len(s.values) {
		return NA[T](len(s.values))
	}
	out := make([]T, len(s.values))
	for i := range out {
		w := s.values[max(0, i-period+1) : i+1]
		if hasNaN(w) {
			out[i] = nan[T]()
			continue
		}
		out[i] = agg(w)
	}
	return Series[T]{values: out}
}

// full applies agg to complete windows only; earlier positions get fill.
func (s Series[T]) full(period int, fill T, agg func(w []T) T) Series[T] {
	return s.fullFrom(period, period-1, fill, agg)
}

// fullFrom is full with the first computed index set to ready, for inputs
// whose own leading samples are warm-up filler.
func (s Series[T]) fullFrom(period, ready int, fill T, agg func(w []T) T) Series[T] {
	mustPeriod(period)
	out := make([]T, len(s.values))
	for i := range out {
		if i < ready {
			out[i] = fill
			continue
		}
		w := s.values[i-period+1 : i+1]
		if hasNaN(w) {
			out[i] = nan[T]()
			continue
		}
		out[i] = agg(w)
	}
	return Series[T]{values: out}
}

func hasNaN[T constraints.Float](w []T) bool {
	for _, v := range w {
		if isNaN(v) {
			return true
		}
	}
	return false
}

func sum[T constraints.Float](w []T) T {
	var total T
	for _, v := range w {
		total += v
	}
	return total
}

func mean[T constraints.Float](w []T) T {
	return sum(w) / T(len(w))
}

// Sum returns the rolling sum over an expanding-then-trailing window.
func (s Series[T]) Sum(period int) Series[T] {
	return s.expanding(period, sum[T])
}

// MA returns the rolling arithmetic mean. The window grows over the first
// period-1 samples, so MA([1 2 3 4 5], 3) is [1 1.5 2 3 4].
func (s Series[T]) MA(period int) Series[T] {
	return s.expanding(period, mean[T])
}

// MAD returns the rolling mean absolute deviation around the window mean.
func (s Series[T]) MAD(period int) Series[T] {
	return s.expanding(period, func(w []T) T {
		m := mean(w)
		var dev T
		for _, v := range w {
			dev += T(math.Abs(float64(v - m)))
		}
		return dev / T(len(w))
	})
}

// Std returns the rolling population standard deviation.
func (s Series[T]) Std(period int) Series[T] {
	return s.expanding(period, func(w []T) T {
		m := mean(w)
		var sq T
		for _, v := range w {
			d := v - m
			sq += d * d
		}
		return T(math.Sqrt(float64(sq / T(len(w)))))
	})
}

// Highest returns the rolling maximum, unavailable until the window is full.
func (s Series[T]) Highest(period int) Series[T] {
	return s.full(period, nan[T](), func(w []T) T {
		hi := w[0]
		for _, v := range w[1:] {
			if v > hi {
				hi = v
			}
		}
		return hi
	})
}

// Lowest returns the rolling minimum, unavailable until the window is full.
func (s Series[T]) Lowest(period int) Series[T] {
	return s.full(period, nan[T](), func(w []T) T {
		lo := w[0]
		for _, v := range w[1:] {
			if v < lo {
				lo = v
			}
		}
		return lo
	})
}

func weighted[T constraints.Float](w []T) T {
	var num T
	for k, v := range w {
		num += T(k+1) * v
	}
	n := T(len(w))
	return num / (n * (n + 1) / 2)
}

// WMA returns the linearly weighted average with weights 1..period, the most
// recent sample weighted highest. Positions before the first full window are
// zero.
func (s Series[T]) WMA(period int) Series[T] {
	return s.full(period, 0, weighted[T])
}

func linreg[T constraints.Float](w []T) T {
	n := float64(len(w))
	if len(w) == 1 {
		return w[0]
	}
	sx := n * (n - 1) / 2
	sxx := (n - 1) * n * (2*n - 1) / 6
	var sy, sxy float64
	for k, v := range w {
		sy += float64(v)
		sxy += float64(k) * float64(v)
	}
	slope := (n*sxy - sx*sy) / (n*sxx - sx*sx)
	intercept := (sy - slope*sx) / n
	return T(intercept + slope*(n-1))
}

// LinReg fits a least-squares line over the trailing window and evaluates it
// at the most recent sample. Unavailable until the window is full.
func (s Series[T]) LinReg(period int) Series[T] {
	return s.full(period, nan[T](), linreg[T])
}

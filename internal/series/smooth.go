package series

import (
	"fmt"
	"math"
	"strings"
)

// SmoothKind selects a moving-average or recursive filter algorithm.
type SmoothKind string

const (
	// SimpleMovingAverage is MA: expanding, then trailing arithmetic mean
	SimpleMovingAverage SmoothKind = "SMA"
	// ExponentialMovingAverage uses alpha = 2/(period+1), seeded with the first sample
	ExponentialMovingAverage SmoothKind = "EMA"
	// SmoothedMovingAverage is Wilder's smoothing, alpha = 1/period
	SmoothedMovingAverage SmoothKind = "SMMA"
	// WeightedMovingAverage weights the window 1..period
	WeightedMovingAverage SmoothKind = "WMA"
	// HullMovingAverage is WMA(2*WMA(p/2) - WMA(p), floor(sqrt(p)))
	HullMovingAverage SmoothKind = "HMA"
	// ZeroLagMovingAverage is EMA of 2*x - x[lag]
	ZeroLagMovingAverage SmoothKind = "ZLEMA"
	// LeastSquaresMovingAverage is LinReg
	LeastSquaresMovingAverage SmoothKind = "LSMA"
	// DoubleExponentialMovingAverage is 2*EMA - EMA(EMA)
	DoubleExponentialMovingAverage SmoothKind = "DEMA"
	// TripleExponentialMovingAverage is 3*(EMA - EMA(EMA)) + EMA(EMA(EMA))
	TripleExponentialMovingAverage SmoothKind = "TEMA"
	// KaufmanAdaptiveMovingAverage adapts its constant to the efficiency ratio
	KaufmanAdaptiveMovingAverage SmoothKind = "KAMA"
	// UltimateSmoother is Ehlers' zero-lag-in-passband two pole filter
	UltimateSmoother SmoothKind = "USMA"
	// SuperSmoother is Ehlers' two pole Butterworth style filter
	SuperSmoother SmoothKind = "SSF"
)

var smoothKinds = []SmoothKind{
	SimpleMovingAverage,
	ExponentialMovingAverage,
	SmoothedMovingAverage,
	WeightedMovingAverage,
	HullMovingAverage,
	ZeroLagMovingAverage,
	LeastSquaresMovingAverage,
	DoubleExponentialMovingAverage,
	TripleExponentialMovingAverage,
	KaufmanAdaptiveMovingAverage,
	UltimateSmoother,
	SuperSmoother,
}

var smoothAliases = map[string]SmoothKind{
	"RMA":    SmoothedMovingAverage,
	"WILDER": SmoothedMovingAverage,
}

// SmoothKinds returns every supported kind.
func SmoothKinds() []SmoothKind {
	out := make([]SmoothKind, len(smoothKinds))
	copy(out, smoothKinds)
	return out
}

// String returns the kind name.
func (k SmoothKind) String() string {
	return string(k)
}

// Valid reports whether k is a supported kind.
func (k SmoothKind) Valid() bool {
	for _, known := range smoothKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ParseSmoothKind converts a case-insensitive name to a SmoothKind.
func ParseSmoothKind(name string) (SmoothKind, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if k := SmoothKind(n); k.Valid() {
		return k, nil
	}
	if k, ok := smoothAliases[n]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSmoothKind, name)
}

// WarmUp returns how many leading positions of Smooth(kind, period) are
// placeholders rather than values: zeros for WMA and HMA, NaN for ZLEMA and
// LSMA. The other kinds are defined from index 0.
func (k SmoothKind) WarmUp(period int) int {
	if period < 1 {
		return 0
	}
	switch k {
	case WeightedMovingAverage, LeastSquaresMovingAverage:
		return period - 1
	case HullMovingAverage:
		return period - 1 + hmaRoot(period) - 1
	case ZeroLagMovingAverage:
		return zlemaLag(period)
	default:
		return 0
	}
}

// Smooth applies the algorithm selected by kind. An unknown kind panics.
func (s Series[T]) Smooth(kind SmoothKind, period int) Series[T] {
	switch kind {
	case SimpleMovingAverage:
		return s.MA(period)
	case ExponentialMovingAverage:
		return s.EMA(period)
	case SmoothedMovingAverage:
		return s.SMMA(period)
	case WeightedMovingAverage:
		return s.WMA(period)
	case HullMovingAverage:
		return s.HMA(period)
	case ZeroLagMovingAverage:
		return s.ZLEMA(period)
	case LeastSquaresMovingAverage:
		return s.LinReg(period)
	case DoubleExponentialMovingAverage:
		return s.DEMA(period)
	case TripleExponentialMovingAverage:
		return s.TEMA(period)
	case KaufmanAdaptiveMovingAverage:
		return s.KAMA(period)
	case UltimateSmoother:
		return s.USMA(period)
	case SuperSmoother:
		return s.SSF(period)
	default:
		panic(fmt.Errorf("%w: %q", ErrUnknownSmoothKind, string(kind)))
	}
}

// recur runs out = alpha*x + (1-alpha)*out[prev], seeded with the first
// available sample. Unavailable samples produce unavailable output and leave
// the carried state untouched.
func (s Series[T]) recur(alpha float64) Series[T] {
	out := make([]T, len(s.values))
	var prev float64
	seeded := false
	for i, v := range s.values {
		if isNaN(v) {
			out[i] = v
			continue
		}
		x := float64(v)
		if seeded {
			prev = alpha*x + (1-alpha)*prev
		} else {
			prev, seeded = x, true
		}
		out[i] = T(prev)
	}
	return Series[T]{values: out}
}

// EMA returns the exponential moving average with alpha = 2/(period+1).
func (s Series[T]) EMA(period int) Series[T] {
	mustPeriod(period)
	return s.recur(2 / float64(period+1))
}

// SMMA returns Wilder's smoothed moving average with alpha = 1/period.
func (s Series[T]) SMMA(period int) Series[T] {
	mustPeriod(period)
	return s.recur(1 / float64(period))
}

// DEMA returns 2*EMA - EMA(EMA).
func (s Series[T]) DEMA(period int) Series[T] {
	e1 := s.EMA(period)
	e2 := e1.EMA(period)
	return e1.MulScalar(2).Sub(e2)
}

// TEMA returns 3*(EMA - EMA(EMA)) + EMA(EMA(EMA)).
func (s Series[T]) TEMA(period int) Series[T] {
	e1 := s.EMA(period)
	e2 := e1.EMA(period)
	e3 := e2.EMA(period)
	return e1.Sub(e2).MulScalar(3).Add(e3)
}

func hmaRoot(period int) int {
	return max(int(math.Sqrt(float64(period))), 1)
}

func zlemaLag(period int) int {
	return int(math.Round(float64(period) / 2))
}

// HMA returns the Hull moving average. It is zero until both the period
// window and the floor(sqrt(period)) window over it are full.
func (s Series[T]) HMA(period int) Series[T] {
	mustPeriod(period)
	half := max(period/2, 1)
	root := hmaRoot(period)
	raw := s.WMA(half).MulScalar(2).Sub(s.WMA(period))
	return raw.fullFrom(root, period-1+root-1, 0, weighted[T])
}

// ZLEMA returns the EMA of 2*x[i] - x[i-lag] with lag = round(period/2). It
// is unavailable for the first lag samples.
func (s Series[T]) ZLEMA(period int) Series[T] {
	mustPeriod(period)
	lag := zlemaLag(period)
	return s.MulScalar(2).Sub(s.Shift(lag)).EMA(period)
}

package series

import "math"

const (
	kamaFast = 2.0 / (2 + 1)
	kamaSlow = 2.0 / (30 + 1)
)

// KAMA returns Kaufman's adaptive moving average. The smoothing constant is
// (ER*(fast-slow) + slow)^2 with fast/slow the EMA constants of 2 and 30
// periods, and ER = |x[i]-x[i-period]| / sum(|x[j]-x[j-1]|) over the window.
// The first period samples pass through unchanged.
func (s Series[T]) KAMA(period int) Series[T] {
	mustPeriod(period)
	out := make([]T, len(s.values))
	var prev float64
	seeded := false
	for i, v := range s.values {
		if isNaN(v) {
			out[i] = v
			continue
		}
		x := float64(v)
		if i < period {
			prev, seeded = x, true
			out[i] = v
			continue
		}
		w := s.values[i-period : i+1]
		if hasNaN(w) {
			out[i] = nan[T]()
			continue
		}
		if !seeded {
			prev, seeded = x, true
			out[i] = v
			continue
		}
		change := math.Abs(x - float64(w[0]))
		var path float64
		for j := 1; j < len(w); j++ {
			path += math.Abs(float64(w[j] - w[j-1]))
		}
		er := 0.0
		if path != 0 {
			er = change / path
		}
		sc := math.Pow(er*(kamaFast-kamaSlow)+kamaSlow, 2)
		prev += sc * (x - prev)
		out[i] = T(prev)
	}
	return Series[T]{values: out}
}

// twoPole holds the shared pole placement of Ehlers' filters.
type twoPole struct {
	c2, c3 float64
}

func newTwoPole(period int) twoPole {
	a1 := math.Exp(-1.414 * math.Pi / float64(period))
	return twoPole{
		c2: 2 * a1 * math.Cos(1.414*math.Pi/float64(period)),
		c3: -a1 * a1,
	}
}

// filter2 runs a two-pole recursion. step receives the index and the two
// previous outputs. The first three samples of every run of available
// samples pass through; an unavailable sample restarts the run.
func (s Series[T]) filter2(step func(i int, y1, y2 float64) float64) Series[T] {
	out := make([]T, len(s.values))
	run := 0
	for i, v := range s.values {
		if isNaN(v) {
			out[i] = v
			run = 0
			continue
		}
		run++
		if run <= 3 {
			out[i] = v
			continue
		}
		out[i] = T(step(i, float64(out[i-1]), float64(out[i-2])))
	}
	return Series[T]{values: out}
}

// USMA returns Ehlers' ultimate smoother.
func (s Series[T]) USMA(period int) Series[T] {
	mustPeriod(period)
	p := newTwoPole(period)
	c1 := (1 + p.c2 - p.c3) / 4
	return s.filter2(func(i int, y1, y2 float64) float64 {
		x0, x1, x2 := float64(s.values[i]), float64(s.values[i-1]), float64(s.values[i-2])
		return (1-c1)*x0 + (2*c1-p.c2)*x1 - (c1+p.c3)*x2 + p.c2*y1 + p.c3*y2
	})
}

// SSF returns Ehlers' two pole super smoother.
func (s Series[T]) SSF(period int) Series[T] {
	mustPeriod(period)
	p := newTwoPole(period)
	c1 := 1 - p.c2 - p.c3
	return s.filter2(func(i int, y1, y2 float64) float64 {
		x0, x1 := float64(s.values[i]), float64(s.values[i-1])
		return c1*(x0+x1)/2 + p.c2*y1 + p.c3*y2
	})
}

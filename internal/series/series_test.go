package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nan64 = math.NaN()

// assertSeries compares got against want sample by sample. NaN in want
// requires NaN in got.
func assertSeries(t *testing.T, want []float64, got Float64, tol float64) {
	t.Helper()
	require.Equal(t, len(want), got.Len(), "length")
	for i, w := range want {
		g := got.At(i)
		if math.IsNaN(w) {
			assert.True(t, math.IsNaN(g), "index %d: got %.6f, want NaN", i, g)
			continue
		}
		if math.Abs(g-w) > tol {
			t.Errorf("index %d: got %.6f, want %.6f (tol=%g)", i, g, w, tol)
		}
	}
}

// requirePanicsWith runs fn and checks it panics with an error wrapping target.
func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.ErrorIs(t, err, target)
	}()
	fn()
}

func TestNew_CopiesInput(t *testing.T) {
	in := []float64{1, 2, 3}
	s := New(in)
	in[0] = 100

	assert.Equal(t, 1.0, s.At(0))
	out := s.Values()
	out[1] = 100
	assert.Equal(t, 2.0, s.At(1))
}

func TestSeries_Accessors(t *testing.T) {
	s := New([]float64{nan64, 2, nan64, 4})

	assert.Equal(t, 4, s.Len())
	assert.True(t, s.IsNA(0))
	assert.False(t, s.IsNA(1))
	assert.Equal(t, 4.0, s.Last())
	assert.Equal(t, 2, s.CountNA())
	assert.Equal(t, 1, s.FirstValid())
	assert.Equal(t, -1, NA[float64](3).FirstValid())
	assert.True(t, math.IsNaN(Float64{}.Last()))
}

func TestSeries_ReplaceNA(t *testing.T) {
	s := New([]float64{nan64, 2, nan64})
	assertSeries(t, []float64{0, 2, 0}, s.ReplaceNA(0), 0)
	assert.Equal(t, 2, s.CountNA(), "original untouched")
}

func TestSeries_Equal(t *testing.T) {
	a := New([]float64{1, nan64, 3})
	assert.True(t, a.Equal(New([]float64{1, nan64, 3})))
	assert.False(t, a.Equal(New([]float64{1, 2, 3})))
	assert.False(t, a.Equal(New([]float64{1, nan64})))
}

func TestSeries_Float32(t *testing.T) {
	s := New([]float32{1, 2, 3, 4, 5})
	got := s.EMA(3).Float64s()
	assert.InDeltaSlice(t, []float64{1, 1.5, 2.25, 3.125, 4.0625}, got, 1e-6)
	assert.True(t, math.IsNaN(float64(s.Shift(1).At(0))))
}

func TestMask(t *testing.T) {
	a := NewMask([]bool{true, true, false, false})
	b := NewMask([]bool{true, false, true, false})

	assert.Equal(t, []bool{true, false, false, false}, a.And(b).Bools())
	assert.Equal(t, []bool{true, true, true, false}, a.Or(b).Bools())
	assert.Equal(t, []bool{false, false, true, true}, a.Not().Bools())
	assert.Equal(t, 2, a.Count())
	assert.False(t, a.Last())
}

func TestMask_Missing(t *testing.T) {
	m := NewMaskWithMissing([]bool{true, true, false}, []bool{false, true, false})
	all := NewMask([]bool{true, true, true})

	assert.True(t, m.IsNA(1))
	assert.False(t, m.At(1), "missing reads false")
	assert.Equal(t, []bool{true, false, false}, m.Bools())

	and := m.And(all)
	assert.True(t, and.IsNA(1))
	assert.False(t, and.IsNA(0))

	not := m.Not()
	assert.True(t, not.IsNA(1))
	assert.Equal(t, []bool{false, false, true}, not.Bools())
}

func TestSelect(t *testing.T) {
	m := NewMaskWithMissing([]bool{true, false, true}, []bool{false, false, true})
	a := New([]float64{1, 2, 3})
	b := New([]float64{10, 20, 30})

	assertSeries(t, []float64{1, 20, nan64}, Select(m, a, b), 0)
	requirePanicsWith(t, ErrLengthMismatch, func() {
		Select(m, New([]float64{1}), b)
	})
}

func TestPureCombinators_Idempotent(t *testing.T) {
	src := New([]float64{10, 11, 9, 12, 14, 13, nan64, 15, 16, 14, 13, 17})
	expr := func() Float64 {
		fast := src.Smooth(HullMovingAverage, 4)
		slow := src.Smooth(KaufmanAdaptiveMovingAverage, 5)
		return fast.Sub(slow).Div(src.Std(5)).Add(src.LinReg(3))
	}

	first, second := expr(), expr()
	assert.True(t, first.Equal(second))
	for i := 0; i < first.Len(); i++ {
		assert.Equal(t, math.Float64bits(first.At(i)), math.Float64bits(second.At(i)), "index %d", i)
	}
}

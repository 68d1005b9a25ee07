package indicators

import (
	"math"
	"testing"
	"time"

	"seriesKernel/internal/domain"
	"seriesKernel/internal/series"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// klinesFromCloses builds hourly klines whose open, high and low equal the close.
func klinesFromCloses(closes ...float64) []*domain.Kline {
	now := time.Date(2025, 2, 7, 0, 0, 0, 0, time.UTC)
	klines := make([]*domain.Kline, len(closes))
	for i, c := range closes {
		klines[i] = &domain.Kline{
			OpenTime: now.Add(time.Duration(i) * time.Hour),
			Open:     c,
			High:     c,
			Low:      c,
			Close:    c,
		}
	}
	return klines
}

// assertValues compares a series against want; NaN in want requires NaN.
func assertValues(t *testing.T, want []float64, got series.Float64, delta float64) {
	t.Helper()
	require.Equal(t, len(want), got.Len())
	for i, w := range want {
		if math.IsNaN(w) {
			assert.True(t, got.IsNA(i), "index %d: want NaN, got %f", i, got.At(i))
			continue
		}
		assert.InDelta(t, w, got.At(i), delta, "index %d", i)
	}
}

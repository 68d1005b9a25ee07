package indicators

import (
	"context"
	"testing"

	"seriesKernel/internal/domain"
	"seriesKernel/internal/ports"
	"seriesKernel/internal/series"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingAverage_Calculate(t *testing.T) {
	klines := klinesFromCloses(100.0, 102.0, 101.0, 103.0, 104.0)

	tests := []struct {
		name          string
		config        MovingAverageConfig
		klines        []*domain.Kline
		expectedValue float64
		expectedErr   error
	}{
		{
			name: "SMA with sufficient data",
			config: MovingAverageConfig{
				IndicatorConfig: IndicatorConfig{Period: 3},
				Type:            series.SimpleMovingAverage,
			},
			klines:        klines,
			expectedValue: 102.666667, // (101 + 103 + 104) / 3
		},
		{
			name: "EMA with sufficient data",
			config: MovingAverageConfig{
				IndicatorConfig: IndicatorConfig{Period: 3},
				Type:            series.ExponentialMovingAverage,
			},
			klines:        klines,
			expectedValue: 103.0, // 100, 101, 101, 102, 103
		},
		{
			name: "WMA on high prices",
			config: MovingAverageConfig{
				IndicatorConfig: IndicatorConfig{Period: 2, Source: domain.SourceHigh},
				Type:            series.WeightedMovingAverage,
			},
			klines:        klines,
			expectedValue: (103.0 + 2*104.0) / 3,
		},
		{
			name: "Insufficient data",
			config: MovingAverageConfig{
				IndicatorConfig: IndicatorConfig{Period: 6},
				Type:            series.SimpleMovingAverage,
			},
			klines:      klines,
			expectedErr: ports.ErrInsufficientData,
		},
		{
			name: "Invalid MA type",
			config: MovingAverageConfig{
				IndicatorConfig: IndicatorConfig{Period: 3},
				Type:            "INVALID",
			},
			klines:      klines,
			expectedErr: series.ErrUnknownSmoothKind,
		},
		{
			name: "Zero period",
			config: MovingAverageConfig{
				IndicatorConfig: IndicatorConfig{Period: 0},
				Type:            series.HullMovingAverage,
			},
			klines:      klines,
			expectedErr: ports.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ma := NewMovingAverage(tt.config)
			values, err := ma.Calculate(context.Background(), tt.klines)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.klines), values.Len())
			assert.InDelta(t, tt.expectedValue, values.Last(), 0.0001)
		})
	}
}

func TestMovingAverage_EveryKind(t *testing.T) {
	klines := klinesFromCloses(10, 11, 12, 11, 13, 14, 15, 14, 16, 17, 18, 17)
	for _, kind := range series.SmoothKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			ma := NewMovingAverage(MovingAverageConfig{IndicatorConfig: IndicatorConfig{Period: 4}, Type: kind})
			got, err := ma.Calculate(context.Background(), klines)
			require.NoError(t, err)

			raw := Closes(klines).Smooth(kind, 4)
			n := kind.WarmUp(4)
			for i := 0; i < got.Len(); i++ {
				if i < n {
					assert.True(t, got.IsNA(i), "index %d should be warm-up", i)
					continue
				}
				assert.Equal(t, raw.At(i), got.At(i), "index %d", i)
			}
		})
	}
}

func TestMovingAverage_WarmUpMasked(t *testing.T) {
	klines := klinesFromCloses(1, 2, 3, 4, 5, 6, 7, 8)

	wma := NewMovingAverage(MovingAverageConfig{IndicatorConfig: IndicatorConfig{Period: 4}, Type: series.WeightedMovingAverage})
	got, err := wma.Calculate(context.Background(), klines)
	require.NoError(t, err)
	assertValues(t, []float64{nan, nan, nan, 3, 4, 5, 6, 7}, got, 1e-9)
	assert.Equal(t, 4, wma.RequiredDataPoints())

	hma := NewMovingAverage(MovingAverageConfig{IndicatorConfig: IndicatorConfig{Period: 4}, Type: series.HullMovingAverage})
	got, err = hma.Calculate(context.Background(), klines)
	require.NoError(t, err)
	assertValues(t, []float64{nan, nan, nan, nan, 5, 6, 7, 8}, got, 1e-9)
	assert.Equal(t, 5, hma.RequiredDataPoints())

	_, err = hma.Calculate(context.Background(), klines[:4])
	assert.ErrorIs(t, err, ports.ErrInsufficientData)
}

func TestMovingAverage_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ma := NewMovingAverage(MovingAverageConfig{IndicatorConfig: IndicatorConfig{Period: 2}, Type: series.SimpleMovingAverage})
	_, err := ma.Calculate(ctx, klinesFromCloses(1, 2, 3))
	assert.ErrorIs(t, err, ports.ErrContextCanceled)
}

func TestMovingAverage_Name(t *testing.T) {
	tests := []struct {
		name     string
		config   MovingAverageConfig
		expected string
	}{
		{
			name:     "SMA name",
			config:   MovingAverageConfig{IndicatorConfig: IndicatorConfig{Period: 20}, Type: series.SimpleMovingAverage},
			expected: "SMA(20)",
		},
		{
			name:     "KAMA name",
			config:   MovingAverageConfig{IndicatorConfig: IndicatorConfig{Period: 10}, Type: series.KaufmanAdaptiveMovingAverage},
			expected: "KAMA(10)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewMovingAverage(tt.config).Name())
		})
	}
}

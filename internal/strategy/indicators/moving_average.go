package indicators

import (
	"context"
	"fmt"

	"seriesKernel/internal/domain"
	"seriesKernel/internal/ports"
	"seriesKernel/internal/series"
)

// MovingAverageConfig holds configuration for moving average indicators
type MovingAverageConfig struct {
	IndicatorConfig
	Type series.SmoothKind
}

// MovingAverage applies any smoothing algorithm of the series kernel to a price source
type MovingAverage struct {
	BaseIndicator
	config MovingAverageConfig
}

// NewMovingAverage creates a new moving average indicator instance
func NewMovingAverage(config MovingAverageConfig) *MovingAverage {
	return &MovingAverage{
		BaseIndicator: BaseIndicator{Config: config.IndicatorConfig},
		config:        config,
	}
}

// Name returns the name of the indicator, e.g. "EMA(20)"
func (m *MovingAverage) Name() string {
	return fmt.Sprintf("%s(%d)", m.config.Type, m.Config.Period)
}

// RequiredDataPoints returns the period, or more when the kind needs extra
// klines before its first value (HMA).
func (m *MovingAverage) RequiredDataPoints() int {
	return max(m.Config.Period, m.config.Type.WarmUp(m.Config.Period)+1)
}

// Calculate computes the moving average over the whole history. Zero-filled
// warm-up positions (WMA, HMA) are returned as NaN.
func (m *MovingAverage) Calculate(ctx context.Context, klines []*domain.Kline) (series.Float64, error) {
	if !m.config.Type.Valid() {
		return series.Float64{}, fmt.Errorf("unsupported moving average type %q: %w: %w", m.config.Type, ports.ErrInvalidRequest, series.ErrUnknownSmoothKind)
	}
	if err := validate(ctx, m.Name(), m.Config.Period, m.RequiredDataPoints(), klines); err != nil {
		return series.Float64{}, err
	}
	values := m.source(klines).Smooth(m.config.Type, m.Config.Period)
	return warmUp(values, m.config.Type.WarmUp(m.Config.Period)), nil
}

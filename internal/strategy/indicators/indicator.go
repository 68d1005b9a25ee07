package indicators

import (
	"context"
	"fmt"

	"seriesKernel/internal/domain"
	"seriesKernel/internal/ports"
	"seriesKernel/internal/series"
)

// Indicator represents a technical indicator computed over a whole kline history.
type Indicator interface {
	// Calculate returns one value per kline; warm-up positions are NaN.
	Calculate(ctx context.Context, klines []*domain.Kline) (series.Float64, error)

	// RequiredDataPoints returns the minimum number of klines needed for calculation
	RequiredDataPoints() int

	// Name returns the name of the indicator, including its parameters
	Name() string
}

// IndicatorConfig holds common configuration for indicators
type IndicatorConfig struct {
	Period int
	Source domain.PriceSource // Defaults to the close price
}

// BaseIndicator provides common functionality for indicators
type BaseIndicator struct {
	Config IndicatorConfig
}

// RequiredDataPoints returns the minimum number of klines needed for calculation
func (b *BaseIndicator) RequiredDataPoints() int {
	return b.Config.Period
}

// source returns the configured price series.
func (b *BaseIndicator) source(klines []*domain.Kline) series.Float64 {
	return Prices(klines, b.Config.Source)
}

// validate checks the period, the context and the amount of data before a calculation.
func validate(ctx context.Context, name string, period, required int, klines []*domain.Kline) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w: %w", name, ports.ErrContextCanceled, err)
	}
	if period < 1 {
		return fmt.Errorf("%s: period must be positive, got %d: %w", name, period, ports.ErrInvalidRequest)
	}
	if len(klines) < required {
		return fmt.Errorf("not enough data (%d) to calculate %s, need %d: %w", len(klines), name, required, ports.ErrInsufficientData)
	}
	return nil
}

// warmUp marks the first n positions unavailable.
func warmUp(s series.Float64, n int) series.Float64 {
	if n <= 0 {
		return s
	}
	values := s.Values()
	for i := 0; i < n && i < len(values); i++ {
		values[i] = nan
	}
	return series.New(values)
}

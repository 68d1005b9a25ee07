package indicators

import (
	"context"
	"fmt"

	"seriesKernel/internal/domain"
	"seriesKernel/internal/series"
)

// RSIConfig holds configuration for the RSI indicator
type RSIConfig struct {
	IndicatorConfig
	Overbought float64
	Oversold   float64
}

// RSI implements the Relative Strength Index indicator
type RSI struct {
	BaseIndicator
	config RSIConfig
}

// NewRSI creates a new RSI indicator instance
func NewRSI(config RSIConfig) *RSI {
	return &RSI{
		BaseIndicator: BaseIndicator{Config: config.IndicatorConfig},
		config:        config,
	}
}

// Name returns the name of the indicator
func (r *RSI) Name() string {
	return fmt.Sprintf("RSI(%d)", r.Config.Period)
}

// RequiredDataPoints returns period+1: one extra kline for the first change.
func (r *RSI) RequiredDataPoints() int {
	return r.Config.Period + 1
}

// Calculate computes the RSI with Wilder's smoothing of gains and losses.
// A window without losses reads 100, or 50 when there was no movement at all.
func (r *RSI) Calculate(ctx context.Context, klines []*domain.Kline) (series.Float64, error) {
	if err := validate(ctx, r.Name(), r.Config.Period, r.RequiredDataPoints(), klines); err != nil {
		return series.Float64{}, err
	}

	change := r.source(klines).Change(1)
	avgGain := change.MaxScalar(0).SMMA(r.Config.Period)
	avgLoss := change.Neg().MaxScalar(0).SMMA(r.Config.Period)

	n := len(klines)
	rsi := avgGain.Div(avgLoss).AddScalar(1).Rdiv(100).Rsub(100)
	flat := series.Select(avgGain.EqScalar(0), series.Full(n, 50.0), series.Full(n, 100.0))
	rsi = series.Select(avgLoss.EqScalar(0), flat, rsi)

	return warmUp(rsi, r.Config.Period), nil
}

// IsOverbought checks if the RSI value indicates an overbought condition
func (r *RSI) IsOverbought(value float64) bool {
	return value >= r.config.Overbought
}

// IsOversold checks if the RSI value indicates an oversold condition
func (r *RSI) IsOversold(value float64) bool {
	return value <= r.config.Oversold
}

// Overbought marks positions where rsi is at or above the overbought level.
func (r *RSI) Overbought(rsi series.Float64) series.Mask {
	return rsi.GeScalar(r.config.Overbought)
}

// Oversold marks positions where rsi is at or below the oversold level.
func (r *RSI) Oversold(rsi series.Float64) series.Mask {
	return rsi.LeScalar(r.config.Oversold)
}

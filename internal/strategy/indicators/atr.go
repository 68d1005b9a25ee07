package indicators

import (
	"context"
	"fmt"

	"seriesKernel/internal/domain"
	"seriesKernel/internal/series"
)

// ATRConfig holds configuration for the Average True Range indicator
type ATRConfig struct {
	IndicatorConfig
	Smoothing series.SmoothKind // Defaults to Wilder's SMMA
}

// ATR implements the Average True Range indicator
type ATR struct {
	BaseIndicator
	config ATRConfig
}

// NewATR creates a new Average True Range indicator instance
func NewATR(config ATRConfig) *ATR {
	if config.Smoothing == "" {
		config.Smoothing = series.SmoothedMovingAverage
	}
	return &ATR{
		BaseIndicator: BaseIndicator{Config: config.IndicatorConfig},
		config:        config,
	}
}

// Name returns the name of the indicator
func (a *ATR) Name() string {
	return fmt.Sprintf("ATR(%d)", a.Config.Period)
}

// RequiredDataPoints returns period+1 so every averaged range has a previous close.
func (a *ATR) RequiredDataPoints() int {
	return a.Config.Period + 1
}

// Calculate computes the Average True Range for every kline.
func (a *ATR) Calculate(ctx context.Context, klines []*domain.Kline) (series.Float64, error) {
	if err := validate(ctx, a.Name(), a.Config.Period, a.RequiredDataPoints(), klines); err != nil {
		return series.Float64{}, err
	}
	if !a.config.Smoothing.Valid() {
		return series.Float64{}, fmt.Errorf("ATR smoothing: %w", series.ErrUnknownSmoothKind)
	}
	tr := TrueRange(klines)
	return warmUp(tr.Smooth(a.config.Smoothing, a.Config.Period), a.Config.Period), nil
}

// TrueRange returns the greatest of high-low, |high-prevClose| and
// |low-prevClose|. The first kline has no previous close and uses high-low.
func TrueRange(klines []*domain.Kline) series.Float64 {
	highs, lows := Highs(klines), Lows(klines)
	prevClose := Closes(klines).Shift(1)

	hl := highs.Sub(lows)
	hc := highs.Sub(prevClose).Abs().ReplaceNA(0)
	lc := lows.Sub(prevClose).Abs().ReplaceNA(0)
	return hl.Max(hc).Max(lc)
}

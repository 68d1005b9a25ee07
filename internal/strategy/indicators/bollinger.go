package indicators

import (
	"context"
	"fmt"

	"seriesKernel/internal/domain"
	"seriesKernel/internal/ports"
	"seriesKernel/internal/series"
)

// BollingerConfig holds configuration for Bollinger Bands
type BollingerConfig struct {
	IndicatorConfig
	Width  float64           // Standard deviations between the middle and outer bands
	Middle series.SmoothKind // Defaults to SMA
}

// Bands holds the three Bollinger lines.
type Bands struct {
	Upper  series.Float64
	Middle series.Float64
	Lower  series.Float64
}

// Bollinger implements Bollinger Bands. Calculate returns %B, the position
// of the price inside the bands (0 at the lower band, 1 at the upper).
type Bollinger struct {
	BaseIndicator
	config BollingerConfig
}

// NewBollinger creates a new Bollinger Bands indicator instance
func NewBollinger(config BollingerConfig) *Bollinger {
	if config.Middle == "" {
		config.Middle = series.SimpleMovingAverage
	}
	if config.Width == 0 {
		config.Width = 2
	}
	return &Bollinger{
		BaseIndicator: BaseIndicator{Config: config.IndicatorConfig},
		config:        config,
	}
}

// Name returns the name of the indicator
func (b *Bollinger) Name() string {
	return fmt.Sprintf("BOLL(%d,%g)", b.Config.Period, b.config.Width)
}

// Bands computes the upper, middle and lower bands. Positions before the
// first full window are unavailable.
func (b *Bollinger) Bands(ctx context.Context, klines []*domain.Kline) (Bands, error) {
	if err := validate(ctx, b.Name(), b.Config.Period, b.RequiredDataPoints(), klines); err != nil {
		return Bands{}, err
	}
	if b.config.Width < 0 {
		return Bands{}, fmt.Errorf("%s: negative width: %w", b.Name(), ports.ErrInvalidRequest)
	}
	if !b.config.Middle.Valid() {
		return Bands{}, fmt.Errorf("%s middle line: %w", b.Name(), series.ErrUnknownSmoothKind)
	}

	src := b.source(klines)
	middle := src.Smooth(b.config.Middle, b.Config.Period)
	offset := src.Std(b.Config.Period).MulScalar(b.config.Width)
	ready := b.Config.Period - 1
	return Bands{
		Upper:  warmUp(middle.Add(offset), ready),
		Middle: warmUp(middle, ready),
		Lower:  warmUp(middle.Sub(offset), ready),
	}, nil
}

// Calculate returns %B = (price - lower) / (upper - lower). Zero band width is unavailable.
func (b *Bollinger) Calculate(ctx context.Context, klines []*domain.Kline) (series.Float64, error) {
	bands, err := b.Bands(ctx, klines)
	if err != nil {
		return series.Float64{}, err
	}
	return b.source(klines).Sub(bands.Lower).Div(bands.Upper.Sub(bands.Lower)), nil
}

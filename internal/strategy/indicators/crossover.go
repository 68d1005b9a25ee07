package indicators

import (
	"context"
	"fmt"

	"seriesKernel/internal/domain"
	"seriesKernel/internal/ports"
	"seriesKernel/internal/series"
)

// CrossoverConfig holds configuration for a fast/slow moving average pair
type CrossoverConfig struct {
	FastPeriod int
	SlowPeriod int
	Type       series.SmoothKind
	Source     domain.PriceSource
}

// Signals marks the klines where the fast line crosses the slow one.
type Signals struct {
	Over  series.Mask // fast crossed above slow
	Under series.Mask // fast crossed below slow
}

// Crossover compares two moving averages of the same kind. Calculate returns
// the spread fast - slow; Signals returns the cross events.
type Crossover struct {
	config CrossoverConfig
	fast   *MovingAverage
	slow   *MovingAverage
}

// NewCrossover creates a new crossover indicator instance
func NewCrossover(config CrossoverConfig) *Crossover {
	ma := func(period int) *MovingAverage {
		return NewMovingAverage(MovingAverageConfig{
			IndicatorConfig: IndicatorConfig{Period: period, Source: config.Source},
			Type:            config.Type,
		})
	}
	return &Crossover{
		config: config,
		fast:   ma(config.FastPeriod),
		slow:   ma(config.SlowPeriod),
	}
}

// Name returns the name of the indicator, e.g. "CROSS(EMA,9,21)"
func (c *Crossover) Name() string {
	return fmt.Sprintf("CROSS(%s,%d,%d)", c.config.Type, c.config.FastPeriod, c.config.SlowPeriod)
}

// RequiredDataPoints returns what the slower line needs plus one kline to
// observe a cross.
func (c *Crossover) RequiredDataPoints() int {
	return max(c.fast.RequiredDataPoints(), c.slow.RequiredDataPoints()) + 1
}

func (c *Crossover) lines(ctx context.Context, klines []*domain.Kline) (fast, slow series.Float64, err error) {
	if c.config.FastPeriod >= c.config.SlowPeriod {
		return fast, slow, fmt.Errorf("%s: fast period must be below slow period: %w", c.Name(), ports.ErrInvalidRequest)
	}
	if err := validate(ctx, c.Name(), c.config.FastPeriod, c.RequiredDataPoints(), klines); err != nil {
		return fast, slow, err
	}
	if fast, err = c.fast.Calculate(ctx, klines); err != nil {
		return fast, slow, err
	}
	if slow, err = c.slow.Calculate(ctx, klines); err != nil {
		return fast, slow, err
	}
	return fast, slow, nil
}

// Calculate returns the spread between the fast and slow lines.
func (c *Crossover) Calculate(ctx context.Context, klines []*domain.Kline) (series.Float64, error) {
	fast, slow, err := c.lines(ctx, klines)
	if err != nil {
		return series.Float64{}, err
	}
	return fast.Sub(slow), nil
}

// Signals returns the cross events of the fast line over the slow one.
func (c *Crossover) Signals(ctx context.Context, klines []*domain.Kline) (Signals, error) {
	fast, slow, err := c.lines(ctx, klines)
	if err != nil {
		return Signals{}, err
	}
	return Signals{
		Over:  fast.CrossOver(slow),
		Under: fast.CrossUnder(slow),
	}, nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"seriesKernel/config"
	"seriesKernel/internal/domain"
	"seriesKernel/internal/ports"
	"seriesKernel/internal/series"
	"seriesKernel/internal/strategy/analytics"
	"seriesKernel/internal/strategy/indicators"
	"seriesKernel/internal/utils"
)

// NamedSeries is one computed output series.
type NamedSeries struct {
	Name   string
	Values series.Float64
}

// Direction of a cross event.
type Direction string

const (
	CrossUp   Direction = "UP"
	CrossDown Direction = "DOWN"
)

// Signal is the most recent cross of the fast line over the slow one.
type Signal struct {
	Direction Direction
	Index     int
	OpenTime  time.Time
	Price     float64
}

// Report is the outcome of one Run.
type Report struct {
	Symbol     string
	Interval   string
	Klines     []*domain.Kline
	Series     []NamedSeries
	PriceStats *analytics.SeriesStats
	LastSignal *Signal // nil when the lines never crossed
}

// SeriesService loads klines, computes the configured indicator set and
// stores the results.
type SeriesService struct {
	cfg        *config.Config
	logger     ports.Logger
	source     ports.KlineSource
	repo       ports.SeriesRepository // Optional
	indicators []indicators.Indicator
	crossover  *indicators.Crossover
}

// NewSeriesService creates a new application service instance. repo may be
// nil to skip persistence.
func NewSeriesService(
	cfg *config.Config,
	logger ports.Logger,
	source ports.KlineSource,
	repo ports.SeriesRepository,
) (*SeriesService, error) {
	if cfg == nil || logger == nil || source == nil {
		return nil, fmt.Errorf("missing required dependencies for SeriesService: %w", ports.ErrConfigurationError)
	}
	if cfg.FastPeriod >= cfg.SmoothPeriod {
		return nil, fmt.Errorf("fast period %d must be below smoothing period %d: %w", cfg.FastPeriod, cfg.SmoothPeriod, ports.ErrConfigurationError)
	}
	inds, cross := BuildIndicators(cfg)
	return &SeriesService{
		cfg:        cfg,
		logger:     logger,
		source:     source,
		repo:       repo,
		indicators: inds,
		crossover:  cross,
	}, nil
}

// BuildIndicators returns the indicator set described by cfg and the
// fast/slow crossover used for signals.
func BuildIndicators(cfg *config.Config) ([]indicators.Indicator, *indicators.Crossover) {
	base := func(period int) indicators.IndicatorConfig {
		return indicators.IndicatorConfig{Period: period, Source: cfg.PriceSource}
	}
	cross := indicators.NewCrossover(indicators.CrossoverConfig{
		FastPeriod: cfg.FastPeriod,
		SlowPeriod: cfg.SmoothPeriod,
		Type:       cfg.SmoothKind,
		Source:     cfg.PriceSource,
	})
	return []indicators.Indicator{
		indicators.NewMovingAverage(indicators.MovingAverageConfig{IndicatorConfig: base(cfg.FastPeriod), Type: cfg.SmoothKind}),
		indicators.NewMovingAverage(indicators.MovingAverageConfig{IndicatorConfig: base(cfg.SmoothPeriod), Type: cfg.SmoothKind}),
		indicators.NewRSI(indicators.RSIConfig{IndicatorConfig: base(cfg.RSIPeriod), Overbought: cfg.RSIOverbought, Oversold: cfg.RSIOversold}),
		indicators.NewATR(indicators.ATRConfig{IndicatorConfig: base(cfg.ATRPeriod)}),
		indicators.NewBollinger(indicators.BollingerConfig{IndicatorConfig: base(cfg.BollPeriod), Width: cfg.BollWidth}),
		cross,
	}, cross
}

// RequiredDataPoints returns the most klines any configured indicator needs.
func (s *SeriesService) RequiredDataPoints() int {
	required := 0
	for _, ind := range s.indicators {
		required = max(required, ind.RequiredDataPoints())
	}
	return required
}

// Run performs one load-compute-store cycle.
func (s *SeriesService) Run(ctx context.Context) (*Report, error) {
	fields := map[string]interface{}{"symbol": s.cfg.Symbol, "interval": s.cfg.Interval}

	klines, err := s.source.GetKlines(ctx, s.cfg.Symbol, s.cfg.Interval, s.cfg.KlineLimit)
	if err != nil {
		s.logger.Error(ctx, err, "Failed to load klines", fields)
		return nil, fmt.Errorf("failed to load klines: %w", err)
	}
	if required := s.RequiredDataPoints(); len(klines) < required {
		err := fmt.Errorf("loaded %d klines, indicators need %d: %w", len(klines), required, ports.ErrInsufficientData)
		s.logger.Error(ctx, err, "Insufficient historical data", fields)
		return nil, err
	}
	s.logger.Info(ctx, "Loaded klines", map[string]interface{}{"symbol": s.cfg.Symbol, "count": len(klines)})

	computed, err := s.compute(ctx, klines)
	if err != nil {
		s.logger.Error(ctx, err, "Indicator calculation failed", fields)
		return nil, err
	}

	report := &Report{Symbol: s.cfg.Symbol, Interval: s.cfg.Interval, Klines: klines, Series: computed}
	signals, err := s.crossover.Signals(ctx, klines)
	if err != nil {
		return nil, fmt.Errorf("failed to detect crosses: %w", err)
	}
	report.LastSignal = lastSignal(signals, klines, s.cfg.PriceSource)

	times := make([]time.Time, len(klines))
	for i, k := range klines {
		times[i] = k.OpenTime
	}
	if report.PriceStats, err = analytics.Describe(times, indicators.Prices(klines, s.cfg.PriceSource)); err != nil {
		return nil, fmt.Errorf("failed to describe prices: %w", err)
	}

	if err := s.persist(ctx, report); err != nil {
		return nil, err
	}
	if err := s.export(report); err != nil {
		s.logger.Error(ctx, err, "Failed to write series CSV", map[string]interface{}{"path": s.cfg.OutputCSV})
		return nil, fmt.Errorf("failed to export series: %w", err)
	}

	s.logSummary(ctx, report)
	return report, nil
}

// compute runs every indicator concurrently. Series values are immutable,
// so the goroutines share klines without locking.
func (s *SeriesService) compute(ctx context.Context, klines []*domain.Kline) ([]NamedSeries, error) {
	results := make([]NamedSeries, len(s.indicators))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error

	for i, ind := range s.indicators {
		wg.Add(1)
		go func(i int, ind indicators.Indicator) {
			defer wg.Done()
			values, err := ind.Calculate(ctx, klines)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", ind.Name(), err))
				mu.Unlock()
				return
			}
			results[i] = NamedSeries{Name: ind.Name(), Values: values}
		}(i, ind)
	}
	wg.Wait()

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return results, nil
}

func (s *SeriesService) persist(ctx context.Context, report *Report) error {
	if s.repo == nil {
		return nil
	}
	for _, ns := range report.Series {
		points := make([]domain.SeriesPoint, len(report.Klines))
		for i, k := range report.Klines {
			points[i] = domain.SeriesPoint{
				Symbol:   report.Symbol,
				Interval: report.Interval,
				Name:     ns.Name,
				OpenTime: k.OpenTime,
				Value:    ns.Values.At(i),
			}
		}
		if err := s.repo.SavePoints(ctx, points); err != nil {
			s.logger.Error(ctx, err, "Failed to persist series", map[string]interface{}{"name": ns.Name})
			return fmt.Errorf("failed to persist %s: %w", ns.Name, err)
		}
	}
	s.logger.Debug(ctx, "Series persisted", map[string]interface{}{"series": len(report.Series)})
	return nil
}

func (s *SeriesService) export(report *Report) error {
	if s.cfg.OutputCSV == "" {
		return nil
	}
	columns := make([]utils.Column, len(report.Series))
	for i, ns := range report.Series {
		columns[i] = utils.Column{Name: ns.Name, Values: ns.Values.Values()}
	}
	return utils.WriteSeriesToCSV(s.cfg.OutputCSV, report.Klines, columns)
}

func (s *SeriesService) logSummary(ctx context.Context, report *Report) {
	fields := map[string]interface{}{
		"symbol": report.Symbol,
		"close":  report.Klines[len(report.Klines)-1].Close,
	}
	for _, ns := range report.Series {
		fields[ns.Name] = utils.FormatFloat(ns.Values.Last(), 4)
	}
	if st := report.PriceStats; st != nil {
		fields["change"] = utils.FormatFloat(st.Change, 4)
		fields["maxDrawdown"] = utils.FormatFloat(st.MaxDrawdown, 4)
	}
	if sig := report.LastSignal; sig != nil {
		fields["lastCross"] = string(sig.Direction)
		fields["lastCrossTime"] = sig.OpenTime.UTC().Format(time.RFC3339)
		fields["barsSinceCross"] = len(report.Klines) - 1 - sig.Index
	}
	s.logger.Info(ctx, "Series computed", fields)
}

// lastSignal finds the most recent cross event.
func lastSignal(signals indicators.Signals, klines []*domain.Kline, src domain.PriceSource) *Signal {
	for i := len(klines) - 1; i >= 0; i-- {
		var dir Direction
		switch {
		case signals.Over.At(i):
			dir = CrossUp
		case signals.Under.At(i):
			dir = CrossDown
		default:
			continue
		}
		return &Signal{Direction: dir, Index: i, OpenTime: klines[i].OpenTime, Price: klines[i].Price(src)}
	}
	return nil
}

// Start checks the kline source, runs once and, when a refresh interval is
// configured, keeps recomputing until the context is canceled or the
// process receives SIGINT/SIGTERM.
func (s *SeriesService) Start(ctx context.Context) error {
	s.logger.Info(ctx, "Starting Series Service...")

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := s.source.Ping(ctx); err != nil {
		s.logger.Error(ctx, err, "Kline source is unreachable")
		return fmt.Errorf("kline source unreachable: %w", err)
	}

	if _, err := s.Run(ctx); err != nil {
		return err
	}
	if s.cfg.RefreshInterval <= 0 {
		s.logger.Info(ctx, "Series Service stopped.")
		return nil
	}

	ticker := time.NewTicker(s.cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "Context cancelled, Series Service stopped.")
			return nil
		case <-ticker.C:
			if _, err := s.Run(ctx); err != nil {
				if ctx.Err() != nil {
					s.logger.Info(ctx, "Context cancelled, Series Service stopped.")
					return nil
				}
				// Keep refreshing; the next cycle may succeed.
				s.logger.Warn(ctx, "Refresh failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}

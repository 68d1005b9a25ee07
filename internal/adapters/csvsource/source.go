package csvsource

import (
	"context"
	"fmt"
	"sort"
	"time"

	"seriesKernel/internal/domain"
	"seriesKernel/internal/ports"
	"seriesKernel/internal/utils"
)

// Source implements ports.KlineSource over a kline CSV file, as written by
// cmd/fetch_klines. The file is read on every call.
type Source struct {
	path   string
	logger ports.Logger
}

// New creates a CSV kline source.
func New(path string, logger ports.Logger) (*Source, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for CSV source: %w", ports.ErrConfigurationError)
	}
	if path == "" {
		return nil, fmt.Errorf("CSV path is empty: %w", ports.ErrConfigurationError)
	}
	return &Source{path: path, logger: logger}, nil
}

// Ping checks that the file can be read.
func (s *Source) Ping(ctx context.Context) error {
	_, err := s.load(ctx, "", "")
	return err
}

// GetKlines returns the last limit klines of symbol and interval.
func (s *Source) GetKlines(ctx context.Context, symbol string, interval string, limit int) ([]*domain.Kline, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d: %w", limit, ports.ErrInvalidRequest)
	}
	klines, err := s.load(ctx, symbol, interval)
	if err != nil {
		return nil, err
	}
	if len(klines) > limit {
		klines = klines[len(klines)-limit:]
	}
	return klines, nil
}

// GetKlinesRange returns klines opened within [start, end].
func (s *Source) GetKlinesRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]*domain.Kline, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end %s before start %s: %w", end, start, ports.ErrInvalidRequest)
	}
	klines, err := s.load(ctx, symbol, interval)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Kline, 0, len(klines))
	for _, k := range klines {
		if !k.OpenTime.Before(start) && !k.OpenTime.After(end) {
			out = append(out, k)
		}
	}
	return out, nil
}

// load reads the file and keeps rows matching symbol and interval. Empty
// filters match everything. Rows are returned oldest first.
func (s *Source) load(ctx context.Context, symbol, interval string) ([]*domain.Kline, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w: %w", s.path, ports.ErrContextCanceled, err)
	}
	all, err := utils.ReadKlinesFromCSV(s.path)
	if err != nil {
		s.logger.Error(ctx, err, "Failed to read kline CSV", map[string]interface{}{"path": s.path})
		return nil, fmt.Errorf("reading %s: %w: %w", s.path, ports.ErrNotFound, err)
	}

	klines := make([]*domain.Kline, 0, len(all))
	for _, k := range all {
		if (symbol == "" || k.Symbol == symbol) && (interval == "" || k.Interval == interval) {
			klines = append(klines, k)
		}
	}
	sort.SliceStable(klines, func(i, j int) bool { return klines[i].OpenTime.Before(klines[j].OpenTime) })

	if len(all) > 0 && len(klines) == 0 {
		return nil, fmt.Errorf("no %s %s klines in %s: %w", symbol, interval, s.path, ports.ErrInvalidSymbol)
	}
	s.logger.Debug(ctx, "Loaded klines from CSV", map[string]interface{}{"path": s.path, "count": len(klines)})
	return klines, nil
}

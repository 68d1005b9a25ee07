package ports

import (
	"context"

	"seriesKernel/internal/domain"
)

// SeriesRepository stores computed indicator series, one row per sample.
type SeriesRepository interface {
	// SavePoints upserts points keyed by (symbol, interval, name, open time).
	SavePoints(ctx context.Context, points []domain.SeriesPoint) error
	// FindSeries returns the stored points of one series ordered by open time.
	// An empty slice is returned when nothing is stored.
	FindSeries(ctx context.Context, symbol, interval, name string) ([]domain.SeriesPoint, error)
	// FindLatest returns the most recent point of a series.
	// Returns nil, nil if the series is empty.
	FindLatest(ctx context.Context, symbol, interval, name string) (*domain.SeriesPoint, error)
	// DeleteSeries removes every point of a series and reports how many were removed.
	DeleteSeries(ctx context.Context, symbol, interval, name string) (int64, error)
	// ListSeries returns the distinct series names stored for a symbol and interval.
	ListSeries(ctx context.Context, symbol, interval string) ([]string, error)
}

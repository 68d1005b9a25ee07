package ports

import (
	"context"
	"time"

	"seriesKernel/internal/domain"
)

// KlineSource supplies historical candlestick data for series calculations.
// Implementations exist for the Binance futures API and for CSV files.
type KlineSource interface {
	// GetKlines retrieves the most recent klines for the given symbol, oldest first.
	GetKlines(ctx context.Context, symbol string, interval string, limit int) ([]*domain.Kline, error)

	// GetKlinesRange retrieves klines opened within [start, end], oldest first.
	GetKlinesRange(ctx context.Context, symbol string, interval string, start, end time.Time) ([]*domain.Kline, error)

	// Ping checks that the source is reachable.
	Ping(ctx context.Context) error
}

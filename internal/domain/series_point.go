package domain

import (
	"math"
	"time"
)

// SeriesPoint is one sample of a computed indicator series, keyed by the
// open time of the kline it was computed from.
type SeriesPoint struct {
	Symbol   string    // Trading symbol
	Interval string    // Kline interval
	Name     string    // Series name (e.g., "EMA(20)")
	OpenTime time.Time // Open time of the source kline
	Value    float64   // Sample value; NaN when unavailable
}

// Available reports whether the point holds a value.
func (p SeriesPoint) Available() bool {
	return !math.IsNaN(p.Value)
}

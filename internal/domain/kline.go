package domain

import "time"

// Kline represents a single candlestick data point.
type Kline struct {
	OpenTime  time.Time // Start time of the interval
	CloseTime time.Time // End time of the interval
	Symbol    string    // Trading symbol
	Interval  string    // Kline interval (e.g., "1m", "1h")
	Open      float64   // Opening price
	High      float64   // Highest price
	Low       float64   // Lowest price
	Close     float64   // Closing price
	Volume    float64   // Trading volume
	IsFinal   bool      // Whether this kline is the final one for the interval
}

// Price returns the value of the kline selected by src. Unknown sources read the close.
func (k *Kline) Price(src PriceSource) float64 {
	switch src {
	case SourceOpen:
		return k.Open
	case SourceHigh:
		return k.High
	case SourceLow:
		return k.Low
	case SourceHL2:
		return (k.High + k.Low) / 2
	case SourceHLC3:
		return (k.High + k.Low + k.Close) / 3
	case SourceOHLC4:
		return (k.Open + k.High + k.Low + k.Close) / 4
	default:
		return k.Close
	}
}

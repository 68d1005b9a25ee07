package indicators

import (
	"math"

	"seriesKernel/internal/domain"
	"seriesKernel/internal/series"
)

var nan = math.NaN()

// Prices extracts the price selected by src from every kline.
func Prices(klines []*domain.Kline, src domain.PriceSource) series.Float64 {
	values := make([]float64, len(klines))
	for i, k := range klines {
		values[i] = k.Price(src)
	}
	return series.New(values)
}

// Closes extracts close prices.
func Closes(klines []*domain.Kline) series.Float64 {
	return Prices(klines, domain.SourceClose)
}

// Highs extracts high prices.
func Highs(klines []*domain.Kline) series.Float64 {
	return Prices(klines, domain.SourceHigh)
}

// Lows extracts low prices.
func Lows(klines []*domain.Kline) series.Float64 {
	return Prices(klines, domain.SourceLow)
}

// Volumes extracts traded volume.
func Volumes(klines []*domain.Kline) series.Float64 {
	values := make([]float64, len(klines))
	for i, k := range klines {
		values[i] = k.Volume
	}
	return series.New(values)
}

package domain

import (
	"fmt"
	"strings"
)

// PriceSource names the kline field (or blend of fields) an indicator reads.
type PriceSource string

const (
	SourceClose PriceSource = "close"
	SourceOpen  PriceSource = "open"
	SourceHigh  PriceSource = "high"
	SourceLow   PriceSource = "low"
	SourceHL2   PriceSource = "hl2"   // (high+low)/2
	SourceHLC3  PriceSource = "hlc3"  // typical price
	SourceOHLC4 PriceSource = "ohlc4" // average of all four prices
)

// ParsePriceSource converts a case-insensitive name to a PriceSource.
func ParsePriceSource(s string) (PriceSource, error) {
	switch src := PriceSource(strings.ToLower(strings.TrimSpace(s))); src {
	case SourceClose, SourceOpen, SourceHigh, SourceLow, SourceHL2, SourceHLC3, SourceOHLC4:
		return src, nil
	case "":
		return SourceClose, nil
	default:
		return "", fmt.Errorf("unknown price source %q", s)
	}
}

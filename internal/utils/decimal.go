package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseDecimal parses an exchange price or quantity string exactly and
// converts it to the nearest float64.
func ParseDecimal(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parsing decimal '%s': %w", s, err)
	}
	return d.InexactFloat64(), nil
}

// ParseDecimals parses values in order; names label the failing field.
func ParseDecimals(names, values []string) ([]float64, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("%d names for %d values", len(names), len(values))
	}
	out := make([]float64, len(values))
	for i, v := range values {
		f, err := ParseDecimal(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", names[i], err)
		}
		out[i] = f
	}
	return out, nil
}

// FormatFloat renders v in plain notation rounded to places decimals, with
// trailing zeros trimmed. A negative places keeps full precision. NaN and
// infinities render as the empty string.
func FormatFloat(v float64, places int32) string {
	if IsUnavailable(v) {
		return ""
	}
	d := decimal.NewFromFloat(v)
	if places >= 0 {
		d = d.Round(places)
	}
	return d.String()
}

// IsUnavailable reports whether v is NaN or infinite.
func IsUnavailable(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

package series

import (
	"errors"
	"fmt"
)

// Contract violations. The kernel panics with an error wrapping one of these.
var (
	ErrLengthMismatch    = errors.New("series length mismatch")
	ErrInvalidPeriod     = errors.New("invalid period")
	ErrUnknownSmoothKind = errors.New("unknown smoothing kind")
)

func mustSameLen(a, b int) {
	if a != b {
		panic(fmt.Errorf("%w: %d != %d", ErrLengthMismatch, a, b))
	}
}

func mustPeriod(period int) {
	if period < 1 {
		panic(fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidPeriod, period))
	}
}

func mustOffset(n int) {
	if n < 0 {
		panic(fmt.Errorf("%w: offset %d (must be >= 0)", ErrInvalidPeriod, n))
	}
}

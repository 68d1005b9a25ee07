package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"seriesKernel/internal/series"
)

// SeriesStats holds descriptive statistics of one series.
type SeriesStats struct {
	// Basic Metrics
	Samples   int
	Available int
	Mean      float64
	StdDev    float64 // Population standard deviation
	Min       float64
	Max       float64
	First     float64
	Last      float64
	Change    float64 // Relative change from First to Last

	// Drawdown Metrics
	MaxDrawdown    float64
	Drawdowns      []Drawdown
	MonthlyChanges map[string]float64
}

// Drawdown represents a decline from a running peak until the peak is exceeded again.
type Drawdown struct {
	StartTime  time.Time
	EndTime    time.Time
	StartValue float64
	EndValue   float64
	Depth      float64
	Duration   time.Duration
	Recovered  bool
}

// Describe calculates statistics of s, whose samples were observed at times.
// Unavailable samples are skipped. Statistics of an all-unavailable series
// are NaN.
func Describe(times []time.Time, s series.Float64) (*SeriesStats, error) {
	if len(times) != s.Len() {
		return nil, fmt.Errorf("%d timestamps for %d samples: %w", len(times), s.Len(), series.ErrLengthMismatch)
	}

	nan := math.NaN()
	stats := &SeriesStats{
		Samples:        s.Len(),
		Mean:           nan,
		StdDev:         nan,
		Min:            nan,
		Max:            nan,
		First:          nan,
		Last:           nan,
		Change:         nan,
		Drawdowns:      make([]Drawdown, 0),
		MonthlyChanges: make(map[string]float64),
	}

	var sum, sumSq float64
	var peak float64
	var currentDrawdown *Drawdown
	monthFirst := make(map[string]float64)
	lastTime := time.Time{}

	for i := 0; i < s.Len(); i++ {
		if s.IsNA(i) {
			continue
		}
		v := s.At(i)
		t := times[i]

		if stats.Available == 0 {
			stats.First, stats.Min, stats.Max = v, v, v
			peak = v
		}
		stats.Available++
		stats.Last = v
		stats.Min = math.Min(stats.Min, v)
		stats.Max = math.Max(stats.Max, v)
		sum += v
		sumSq += v * v
		lastTime = t

		// Update monthly changes
		monthKey := t.Format("2006-01")
		if _, ok := monthFirst[monthKey]; !ok {
			monthFirst[monthKey] = v
		}
		stats.MonthlyChanges[monthKey] = relative(monthFirst[monthKey], v)

		// Update drawdown tracking
		if v >= peak {
			peak = v
			if currentDrawdown != nil {
				currentDrawdown.EndTime = t
				currentDrawdown.EndValue = v
				currentDrawdown.Duration = t.Sub(currentDrawdown.StartTime)
				currentDrawdown.Recovered = true
				stats.Drawdowns = append(stats.Drawdowns, *currentDrawdown)
				currentDrawdown = nil
			}
			continue
		}
		depth := -relative(peak, v)
		if currentDrawdown == nil {
			currentDrawdown = &Drawdown{StartTime: t, StartValue: peak, Depth: depth}
		} else {
			currentDrawdown.Depth = math.Max(currentDrawdown.Depth, depth)
		}
		if depth > stats.MaxDrawdown {
			stats.MaxDrawdown = depth
		}
	}

	// Close any open drawdown
	if currentDrawdown != nil {
		currentDrawdown.EndTime = lastTime
		currentDrawdown.EndValue = stats.Last
		currentDrawdown.Duration = lastTime.Sub(currentDrawdown.StartTime)
		stats.Drawdowns = append(stats.Drawdowns, *currentDrawdown)
	}

	if stats.Available > 0 {
		n := float64(stats.Available)
		stats.Mean = sum / n
		stats.StdDev = math.Sqrt(math.Max(sumSq/n-stats.Mean*stats.Mean, 0))
		stats.Change = relative(stats.First, stats.Last)
	}
	return stats, nil
}

// relative returns (to-from)/|from|, or NaN when from is zero.
func relative(from, to float64) float64 {
	if from == 0 {
		return math.NaN()
	}
	return (to - from) / math.Abs(from)
}

// GetMonthlyChanges returns the monthly changes as a sorted slice
func (m *SeriesStats) GetMonthlyChanges() []MonthlyChange {
	changes := make([]MonthlyChange, 0, len(m.MonthlyChanges))
	for month, change := range m.MonthlyChanges {
		date, _ := time.Parse("2006-01", month)
		changes = append(changes, MonthlyChange{
			Month:  date,
			Change: change,
		})
	}
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Month.Before(changes[j].Month)
	})
	return changes
}

// MonthlyChange represents the relative change of a series within one month
type MonthlyChange struct {
	Month  time.Time
	Change float64
}

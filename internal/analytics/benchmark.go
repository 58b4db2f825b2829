package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
)

// BenchmarkSeries is an ordered sequence of (date, level) points for one
// named index. Period returns use interpolation-free nearest-prior lookup
// on both ends of the window.
type BenchmarkSeries struct {
	Symbol string
	points []model.BenchmarkPoint
}

// NewBenchmarkSeries builds a series from unordered points.
func NewBenchmarkSeries(symbol string, points []model.BenchmarkPoint) BenchmarkSeries {
	sorted := make([]model.BenchmarkPoint, len(points))
	copy(sorted, points)
	for i := range sorted {
		sorted[i].Date = dateOnly(sorted[i].Date)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return BenchmarkSeries{Symbol: symbol, points: sorted}
}

// Len returns the number of points in the series.
func (s BenchmarkSeries) Len() int { return len(s.points) }

// LevelAt resolves the index level as of a date: the last point with
// date <= d. Returns ErrBenchmarkDataGap when the series has no point on
// or before the date.
func (s BenchmarkSeries) LevelAt(d time.Time) (float64, error) {
	target := dateOnly(d)
	idx := sort.Search(len(s.points), func(i int) bool {
		return s.points[i].Date.After(target)
	})
	if idx == 0 {
		return 0, fmt.Errorf("%w: %s as of %s",
			apperrors.ErrBenchmarkDataGap, s.Symbol, target.Format("2006-01-02"))
	}
	return s.points[idx-1].Level, nil
}

// Return computes the benchmark's fractional return between the levels
// resolved at start and end.
func (s BenchmarkSeries) Return(start, end time.Time) (float64, error) {
	if dateOnly(end).Before(dateOnly(start)) {
		return 0, apperrors.ErrInvalidDateRange
	}
	levelStart, err := s.LevelAt(start)
	if err != nil {
		return 0, err
	}
	levelEnd, err := s.LevelAt(end)
	if err != nil {
		return 0, err
	}
	return (levelEnd - levelStart) / levelStart, nil
}

// RelativePerformance is the portfolio money-weighted return minus the
// benchmark return over the same window. Both figures must be computed for
// the same window; misaligned windows produce meaningless deltas.
func RelativePerformance(portfolioReturn, benchmarkReturn float64) float64 {
	return portfolioReturn - benchmarkReturn
}

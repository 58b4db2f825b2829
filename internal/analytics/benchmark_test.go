package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
)

func TestBenchmarkSeries_Return(t *testing.T) {
	series := NewBenchmarkSeries("^GSPC", []model.BenchmarkPoint{
		{Symbol: "^GSPC", Date: date(2024, 1, 1), Level: 100},
		{Symbol: "^GSPC", Date: date(2024, 12, 31), Level: 120},
	})

	ret, err := series.Return(date(2024, 1, 1), date(2024, 12, 31))
	require.NoError(t, err)
	assert.InDelta(t, 0.20, ret, 1e-9)
}

func TestBenchmarkSeries_NearestPriorLookup(t *testing.T) {
	series := NewBenchmarkSeries("^GSPTSE", []model.BenchmarkPoint{
		{Date: date(2024, 1, 2), Level: 100},
		{Date: date(2024, 1, 9), Level: 110},
		{Date: date(2024, 1, 16), Level: 105},
	})

	// Jan 12 falls between points; the Jan 9 level applies.
	level, err := series.LevelAt(date(2024, 1, 12))
	require.NoError(t, err)
	assert.Equal(t, 110.0, level)
}

func TestBenchmarkSeries_DataGap(t *testing.T) {
	series := NewBenchmarkSeries("^GSPC", []model.BenchmarkPoint{
		{Date: date(2024, 6, 1), Level: 100},
	})

	t.Run("start before first point", func(t *testing.T) {
		_, err := series.Return(date(2024, 1, 1), date(2024, 7, 1))
		assert.ErrorIs(t, err, apperrors.ErrBenchmarkDataGap)
	})

	t.Run("empty series", func(t *testing.T) {
		empty := NewBenchmarkSeries("^GSPC", nil)
		_, err := empty.LevelAt(date(2024, 6, 1))
		assert.ErrorIs(t, err, apperrors.ErrBenchmarkDataGap)
	})
}

func TestBenchmarkSeries_InvalidRange(t *testing.T) {
	series := NewBenchmarkSeries("^GSPC", []model.BenchmarkPoint{
		{Date: date(2024, 1, 1), Level: 100},
	})
	_, err := series.Return(date(2024, 6, 1), date(2024, 1, 1))
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
}

func TestRelativePerformance(t *testing.T) {
	assert.InDelta(t, 0.03, RelativePerformance(0.13, 0.10), 1e-9)
	assert.InDelta(t, -0.05, RelativePerformance(0.05, 0.10), 1e-9)
}

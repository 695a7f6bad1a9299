package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelens/internal/analytics"
	"github.com/tradelens/internal/models"
)

func countCells(grid models.MonthGrid) int {
	n := 0
	for _, week := range grid.Weeks {
		for _, c := range week {
			if c != nil {
				n++
			}
		}
	}
	return n
}

func TestAggregateMonthLeapFebruary(t *testing.T) {
	// February 2024: 29 days, the 1st is a Thursday.
	grid := analytics.AggregateMonth(nil, 2024, 2)

	require.Len(t, grid.Weeks, 5)
	assert.Equal(t, 29, countCells(grid))

	// Leading cells before Thursday are outside the month.
	first := grid.Weeks[0]
	for i := 0; i < 4; i++ {
		assert.Nil(t, first[i])
	}
	require.NotNil(t, first[4])
	assert.Equal(t, 1, first[4].Day)
	assert.Equal(t, "2024-02-01", first[4].Date)

	// Last placed day flushes the final partial week.
	last := grid.Weeks[4]
	require.NotNil(t, last[4])
	assert.Equal(t, 29, last[4].Day)
	assert.Nil(t, last[5])
	assert.Nil(t, last[6])
}

func TestAggregateMonthCellCountMatchesDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, days int
	}{
		{2024, 1, 31},
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 12, 31},
	}
	for _, tc := range cases {
		grid := analytics.AggregateMonth(nil, tc.year, tc.month)
		assert.Equal(t, tc.days, countCells(grid), "%d-%02d", tc.year, tc.month)
	}
}

func TestAggregateMonthWeeklyTotalsCrossCheck(t *testing.T) {
	days := []models.DailyEntry{
		{Date: "2024-02-01", DailyPnL: 100, TradeCount: 3},
		{Date: "2024-02-03", DailyPnL: -40, TradeCount: 1},
		{Date: "2024-02-15", DailyPnL: 25, TradeCount: 2},
		{Date: "2024-02-29", DailyPnL: 10, TradeCount: 1},
		{Date: "2024-03-01", DailyPnL: 999, TradeCount: 9}, // outside the month
	}

	grid := analytics.AggregateMonth(days, 2024, 2)

	require.Len(t, grid.WeeklyTotals, len(grid.Weeks))
	var weekSum float64
	var tradeSum int
	for _, wt := range grid.WeeklyTotals {
		weekSum += wt.PnL
		tradeSum += wt.Trades
	}
	assert.InDelta(t, grid.MonthTotal, weekSum, 1e-9)
	assert.Equal(t, 95.0, grid.MonthTotal)
	assert.Equal(t, 7, tradeSum)

	assert.Equal(t, models.WeekTotal{PnL: 60, Trades: 4}, grid.WeeklyTotals[0])
}

func TestAggregateMonthNoDataCellIsNotZeroData(t *testing.T) {
	days := []models.DailyEntry{
		{Date: "2024-02-02", DailyPnL: 0, TradeCount: 2}, // traded to breakeven
	}

	grid := analytics.AggregateMonth(days, 2024, 2)

	feb1 := grid.Weeks[0][4]
	feb2 := grid.Weeks[0][5]
	require.NotNil(t, feb1)
	require.NotNil(t, feb2)

	assert.Nil(t, feb1.Entry) // no trades that day
	require.NotNil(t, feb2.Entry)
	assert.Zero(t, feb2.Entry.DailyPnL)
	assert.Equal(t, 2, feb2.Entry.TradeCount)
}

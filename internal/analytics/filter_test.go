package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradelens/internal/analytics"
	"github.com/tradelens/internal/models"
)

func TestFilterTradesOpenRangeIsIdentity(t *testing.T) {
	trades := []models.TradeRecord{
		trade("2024-01-01", 10, 0),
		trade("2024-02-15", -5, 0),
	}

	got := analytics.FilterTrades(trades, models.DateRange{})
	assert.Equal(t, trades, got)
}

func TestFilterTradesInclusiveBounds(t *testing.T) {
	trades := []models.TradeRecord{
		trade("2024-01-01", 1, 0),
		trade("2024-01-15", 2, 0),
		trade("2024-01-31", 3, 0),
		trade("2024-02-01", 4, 0),
	}

	got := analytics.FilterTrades(trades, models.DateRange{Start: "2024-01-15", End: "2024-01-31"})
	assert.Len(t, got, 2)
	assert.Equal(t, "2024-01-15", got[0].Date)
	assert.Equal(t, "2024-01-31", got[1].Date)

	// Half-open ranges
	got = analytics.FilterTrades(trades, models.DateRange{Start: "2024-01-16"})
	assert.Len(t, got, 2)
	got = analytics.FilterTrades(trades, models.DateRange{End: "2024-01-01"})
	assert.Len(t, got, 1)
}

func TestFilterTradesIdempotent(t *testing.T) {
	trades := []models.TradeRecord{
		trade("2024-01-01", 1, 0),
		trade("2024-01-15", 2, 0),
		trade("2024-03-01", 3, 0),
	}
	r := models.DateRange{Start: "2024-01-02", End: "2024-02-28"}

	once := analytics.FilterTrades(trades, r)
	twice := analytics.FilterTrades(once, r)
	assert.Equal(t, once, twice)
}

func TestFilterDailyEntriesSameSemantics(t *testing.T) {
	days := []models.DailyEntry{
		{Date: "2024-01-01", DailyPnL: 10},
		{Date: "2024-01-02", DailyPnL: -3},
		{Date: "2024-01-03", DailyPnL: 5},
	}

	assert.Equal(t, days, analytics.FilterDailyEntries(days, models.DateRange{}))

	got := analytics.FilterDailyEntries(days, models.DateRange{Start: "2024-01-02", End: "2024-01-02"})
	assert.Len(t, got, 1)
	assert.Equal(t, "2024-01-02", got[0].Date)
}

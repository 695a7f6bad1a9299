package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelens/internal/models"
	"github.com/tradelens/internal/service"
)

func newService() *service.DatasetService {
	return service.NewDatasetService(nil, time.Minute)
}

func sampleTrades() []models.TradeRecord {
	return []models.TradeRecord{
		{Date: "2024-01-02", Symbol: "ES", Direction: models.DirectionLong, NetPnL: 100, Duration: 120},
		{Date: "2024-01-02", Symbol: "NQ", Direction: models.DirectionShort, NetPnL: -40, Duration: 45},
		{Date: "2024-01-05", Symbol: "ES", Direction: models.DirectionLong, NetPnL: 60, Duration: 300},
	}
}

func TestRegisterDerivesDailySeries(t *testing.T) {
	svc := newService()

	ds := svc.Register("jan.csv", sampleTrades())

	assert.NotEmpty(t, ds.ID)
	assert.Equal(t, "jan.csv", ds.Name)
	assert.Equal(t, 3, ds.TradeCount)
	assert.Equal(t, "2024-01-02", ds.FirstDate)
	assert.Equal(t, "2024-01-05", ds.LastDate)
	require.Len(t, ds.Days, 2)
	assert.Equal(t, 60.0, ds.Days[0].DailyPnL)
	assert.Equal(t, 120.0, ds.Days[1].CumulativePnL)
}

func TestGetAndDelete(t *testing.T) {
	svc := newService()
	ds := svc.Register("a.csv", sampleTrades())

	got, err := svc.Get(ds.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.ID, got.ID)

	require.NoError(t, svc.Delete(ds.ID))
	_, err = svc.Get(ds.ID)
	assert.ErrorIs(t, err, service.ErrDatasetNotFound)
	assert.ErrorIs(t, svc.Delete(ds.ID), service.ErrDatasetNotFound)
}

func TestListNewestFirst(t *testing.T) {
	svc := newService()
	first := svc.Register("first.csv", sampleTrades())
	time.Sleep(5 * time.Millisecond)
	second := svc.Register("second.csv", sampleTrades())

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestOverviewFullRange(t *testing.T) {
	svc := newService()
	ds := svc.Register("a.csv", sampleTrades())

	ov, err := svc.Overview(context.Background(), ds.ID, models.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, 3, ov.Summary.TotalTrades)
	assert.Equal(t, 2, ov.Summary.Wins)
	assert.Equal(t, 120.0, ov.Summary.TotalPnL)
	assert.Len(t, ov.Daily, 2)
	assert.Len(t, ov.Distribution, 11)
	assert.InDelta(t, 200.0/3.0, ov.Direction.LongPct, 1e-9)
}

func TestOverviewRangeFilter(t *testing.T) {
	svc := newService()
	ds := svc.Register("a.csv", sampleTrades())

	ov, err := svc.Overview(context.Background(), ds.ID, models.DateRange{Start: "2024-01-03", End: "2024-01-31"})
	require.NoError(t, err)

	assert.Equal(t, 1, ov.Summary.TotalTrades)
	require.Len(t, ov.Daily, 1)
	// Cumulative PnL keeps its full-dataset value under filtering
	assert.Equal(t, 120.0, ov.Daily[0].CumulativePnL)
}

func TestOverviewUnknownDataset(t *testing.T) {
	svc := newService()
	_, err := svc.Overview(context.Background(), "nope", models.DateRange{})
	assert.ErrorIs(t, err, service.ErrDatasetNotFound)
}

func TestCalendarDefaultsToLastDay(t *testing.T) {
	svc := newService()
	ds := svc.Register("a.csv", sampleTrades())

	grid, err := svc.Calendar(ds.ID, models.DateRange{}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, grid.Year)
	assert.Equal(t, 1, grid.Month)
	assert.Equal(t, 120.0, grid.MonthTotal)
}

func TestCalendarInvalidMonth(t *testing.T) {
	svc := newService()
	ds := svc.Register("a.csv", sampleTrades())

	_, err := svc.Calendar(ds.ID, models.DateRange{}, 2024, 13)
	assert.ErrorIs(t, err, service.ErrInvalidMonth)

	_, err = svc.Calendar(ds.ID, models.DateRange{}, 123, 5)
	assert.ErrorIs(t, err, service.ErrInvalidMonth)
}

func TestTradesPaginationAndSort(t *testing.T) {
	svc := newService()
	ds := svc.Register("a.csv", sampleTrades())

	page, total, err := svc.Trades(ds.ID, models.DateRange{}, "netpnl", "desc", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, 100.0, page[0].NetPnL)
	assert.Equal(t, 60.0, page[1].NetPnL)

	page, total, err = svc.Trades(ds.ID, models.DateRange{}, "netpnl", "desc", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, -40.0, page[0].NetPnL)

	// Past the last page returns an empty slice, not an error
	page, total, err = svc.Trades(ds.ID, models.DateRange{}, "", "", 9, 50)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, page)
}

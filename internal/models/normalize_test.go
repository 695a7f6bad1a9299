package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelens/internal/models"
)

func TestNormalizeValidRecord(t *testing.T) {
	rec, err := models.Normalize(models.RawTrade{
		Date:       "2024-03-05",
		Symbol:     " MNQ ",
		Direction:  "Long",
		EntryPrice: "18250.25",
		ExitPrice:  "18260.75",
		Duration:   "125",
		PnL:        "21.00",
		Fees:       "1.40",
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", rec.Date)
	assert.Equal(t, "MNQ", rec.Symbol)
	assert.Equal(t, models.DirectionLong, rec.Direction)
	require.NotNil(t, rec.EntryPrice)
	assert.Equal(t, 18250.25, *rec.EntryPrice)
	assert.Equal(t, 125.0, rec.Duration)
	assert.Equal(t, 21.0, rec.PnL)
	assert.Equal(t, 1.4, rec.Fees)
	assert.InDelta(t, 19.6, rec.NetPnL, 1e-9)
}

func TestNormalizeMandatoryFields(t *testing.T) {
	_, err := models.Normalize(models.RawTrade{PnL: "10"})
	require.Error(t, err)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Field)

	_, err = models.Normalize(models.RawTrade{Date: "2024-01-01"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "pnl", verr.Field)

	// Unparseable PnL is a hard error, not a silent zero
	_, err = models.Normalize(models.RawTrade{Date: "2024-01-01", PnL: "oops"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "pnl", verr.Field)
}

func TestNormalizeOptionalNumericsDegrade(t *testing.T) {
	rec, err := models.Normalize(models.RawTrade{
		Date:      "2024-01-01",
		PnL:       "100",
		Fees:      "not-a-number",
		Duration:  "garbage",
		ExitPrice: "-",
	})

	require.NoError(t, err)
	assert.Zero(t, rec.Fees)
	assert.Zero(t, rec.Duration)
	assert.Nil(t, rec.ExitPrice)
	assert.Equal(t, 100.0, rec.NetPnL)
}

func TestNormalizeNetPnLDerivedUnlessProvided(t *testing.T) {
	rec, err := models.Normalize(models.RawTrade{Date: "2024-01-01", PnL: "50", Fees: "2.5"})
	require.NoError(t, err)
	assert.Equal(t, 47.5, rec.NetPnL)

	rec, err = models.Normalize(models.RawTrade{Date: "2024-01-01", PnL: "50", Fees: "2.5", NetPnL: "44"})
	require.NoError(t, err)
	assert.Equal(t, 44.0, rec.NetPnL)
}

func TestNormalizeMoneyFormats(t *testing.T) {
	rec, err := models.Normalize(models.RawTrade{Date: "2024-01-01", PnL: "$1,234.56"})
	require.NoError(t, err)
	assert.Equal(t, 1234.56, rec.PnL)

	rec, err = models.Normalize(models.RawTrade{Date: "2024-01-01", PnL: "(12.34)"})
	require.NoError(t, err)
	assert.Equal(t, -12.34, rec.PnL)
}

func TestParseDirection(t *testing.T) {
	cases := map[string]models.Direction{
		"long":       models.DirectionLong,
		"LONG":       models.DirectionLong,
		"Buy":        models.DirectionLong,
		"Short":      models.DirectionShort,
		"short sell": models.DirectionShort,
		"SELL":       models.DirectionShort,
		"":           models.DirectionUnknown,
		"flat":       models.DirectionUnknown,
	}
	for raw, want := range cases {
		assert.Equal(t, want, models.ParseDirection(raw), "raw=%q", raw)
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-02-29", "2024-02-29"},
		{"11/04/2025 16:47:10 +01:00", "2025-11-04"},
		{"01/31/2024", "2024-01-31"},
		{"2024-02-29T10:00:00Z", "2024-02-29"},
	}
	for _, tc := range cases {
		got, ok := models.ParseDate(tc.in)
		require.True(t, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, ok := models.ParseDate("not a date")
	assert.False(t, ok)
}

func TestParseDurationSeconds(t *testing.T) {
	assert.Equal(t, 90.0, models.ParseDurationSeconds("90"))
	assert.Equal(t, 3725.0, models.ParseDurationSeconds("01:02:05"))
	assert.Equal(t, 125.0, models.ParseDurationSeconds("02:05"))
	assert.Zero(t, models.ParseDurationSeconds(""))
	assert.Zero(t, models.ParseDurationSeconds("1:2:3:4"))
}

func TestDateRangeContains(t *testing.T) {
	r := models.DateRange{Start: "2024-01-10", End: "2024-01-20"}
	assert.True(t, r.Contains("2024-01-10"))
	assert.True(t, r.Contains("2024-01-20"))
	assert.False(t, r.Contains("2024-01-09"))
	assert.False(t, r.Contains("2024-01-21"))
	assert.True(t, models.DateRange{}.IsZero())
}

package models

import (
	"encoding/json"
	"math"
)

// SummaryStats holds the headline metrics derived from a trade subset.
// Every field has a documented zero default for an empty subset; none of
// the ratios can come back NaN.
type SummaryStats struct {
	TotalPnL    float64 `json:"total_pnl"` // net of fees
	TotalFees   float64 `json:"total_fees"`
	TotalTrades int     `json:"total_trades"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"` // includes breakeven trades

	WinRate       float64 `json:"win_rate"`      // percent
	GrossWin      float64 `json:"gross_win"`     // sum of winning net PnL
	GrossLoss     float64 `json:"gross_loss"`    // abs sum of losing net PnL
	ProfitFactor  float64 `json:"profit_factor"` // +Inf when grossLoss is 0 and grossWin > 0
	ExpectedValue float64 `json:"expected_value"`

	BestTrade  float64 `json:"best_trade"`
	WorstTrade float64 `json:"worst_trade"`
	AvgWin     float64 `json:"avg_win"`
	AvgLoss    float64 `json:"avg_loss"` // non-positive by convention

	AvgDuration     float64 `json:"avg_duration"` // seconds
	AvgWinDuration  float64 `json:"avg_win_duration"`
	AvgLossDuration float64 `json:"avg_loss_duration"`
}

// MarshalJSON encodes an infinite profit factor as the string "inf",
// since JSON has no infinity literal.
func (s SummaryStats) MarshalJSON() ([]byte, error) {
	type alias SummaryStats
	if !math.IsInf(s.ProfitFactor, 1) {
		return json.Marshal(alias(s))
	}
	shadow := struct {
		alias
		ProfitFactor string `json:"profit_factor"`
	}{alias: alias(s), ProfitFactor: "inf"}
	return json.Marshal(shadow)
}

// UnmarshalJSON is the inverse of MarshalJSON: the "inf" marker string
// decodes back to +Inf.
func (s *SummaryStats) UnmarshalJSON(data []byte) error {
	type alias SummaryStats
	shadow := struct {
		*alias
		ProfitFactor json.RawMessage `json:"profit_factor"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return err
	}
	switch string(shadow.ProfitFactor) {
	case "":
		return nil
	case `"inf"`:
		s.ProfitFactor = math.Inf(1)
		return nil
	}
	return json.Unmarshal(shadow.ProfitFactor, &s.ProfitFactor)
}

// DayStats summarizes the daily rollup of a trade subset
type DayStats struct {
	BestDay             float64 `json:"best_day"`
	WorstDay            float64 `json:"worst_day"`
	DayWinRate          float64 `json:"day_win_rate"` // percent of positive days
	MostActiveDayTrades int     `json:"most_active_day_trades"`
	BestDayPctOfTotal   float64 `json:"best_day_pct_total"` // 0 unless total PnL > 0
}

// DirectionStats is the long/short split of a trade subset, in percent
type DirectionStats struct {
	LongPct  float64 `json:"long_pct"`
	ShortPct float64 `json:"short_pct"`
}

// MonthGrid is a calendar-month view of daily entries. Weeks run Sunday
// through Saturday; cells outside the month are nil.
type MonthGrid struct {
	Year         int           `json:"year"`
	Month        int           `json:"month"` // 1-12
	Weeks        [][7]*DayCell `json:"weeks"`
	WeeklyTotals []WeekTotal   `json:"weekly_totals"`
	MonthTotal   float64       `json:"month_total"`
}

// DayCell is one in-month cell of the calendar grid. Entry is nil for a
// day with no trades, which is distinct from a day that netted zero.
type DayCell struct {
	Day   int         `json:"day"`
	Date  string      `json:"date"`
	Entry *DailyEntry `json:"entry"`
}

// WeekTotal aggregates the cells of one grid row that carry data
type WeekTotal struct {
	PnL    float64 `json:"pnl"`
	Trades int     `json:"trades"`
}

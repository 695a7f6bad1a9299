package models

import "strings"

// Direction represents the side a trade was taken on
type Direction string

const (
	DirectionLong    Direction = "LONG"
	DirectionShort   Direction = "SHORT"
	DirectionUnknown Direction = "UNKNOWN"
)

// ParseDirection maps free-text side values onto a Direction.
// Matching is case-insensitive and by substring: platforms label the side
// as "Long", "BUY", "short sell" and so on depending on the export.
func ParseDirection(raw string) Direction {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "long") || strings.Contains(s, "buy"):
		return DirectionLong
	case strings.Contains(s, "short") || strings.Contains(s, "sell"):
		return DirectionShort
	default:
		return DirectionUnknown
	}
}

// TradeRecord represents one closed trade after normalization.
// Records are immutable once constructed; the analytics engine never
// mutates an input trade.
type TradeRecord struct {
	Date       string    `json:"date"` // ISO YYYY-MM-DD
	Symbol     string    `json:"symbol"`
	Direction  Direction `json:"direction"`
	EntryPrice *float64  `json:"entry_price"` // nil = unknown
	ExitPrice  *float64  `json:"exit_price"`  // nil = unknown
	Duration   float64   `json:"duration"`    // seconds, >= 0
	PnL        float64   `json:"pnl"`         // gross
	Fees       float64   `json:"fees"`
	NetPnL     float64   `json:"net_pnl"` // pnl - fees unless provided
}

// DailyEntry is the per-calendar-day rollup of a trade list.
// CumulativePnL is the prefix sum of DailyPnL in ascending date order over
// the entire dataset, so the equity curve stays continuous under filtering.
type DailyEntry struct {
	Date          string  `json:"date"`
	DailyPnL      float64 `json:"daily_pnl"`
	TradeCount    int     `json:"trade_count"`
	CumulativePnL float64 `json:"cumulative_pnl"`
}

// DateRange is an inclusive date filter. An empty bound is open.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IsZero reports whether both bounds are open
func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}

// Contains reports whether an ISO date falls inside the range.
// ISO date strings compare lexicographically in chronological order.
func (r DateRange) Contains(date string) bool {
	if r.Start != "" && date < r.Start {
		return false
	}
	if r.End != "" && date > r.End {
		return false
	}
	return true
}

// DistributionBucket is one band of a fixed-order distribution
type DistributionBucket struct {
	RangeLabel string  `json:"range"`
	Count      int     `json:"count"`
	WinRate    float64 `json:"win_rate"` // percent, 0 for an empty band
}

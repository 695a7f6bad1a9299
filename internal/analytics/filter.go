// Package analytics derives performance views from normalized trade
// records. Every function here is a pure transformation: no state is kept
// between calls and inputs are never mutated, so callers may recompute on
// every filter change and run concurrent derivations on disjoint inputs.
package analytics

import "github.com/tradelens/internal/models"

// FilterTrades returns the subset of trades whose date falls inside the
// inclusive range. An open range returns the input slice unchanged.
func FilterTrades(trades []models.TradeRecord, r models.DateRange) []models.TradeRecord {
	if r.IsZero() {
		return trades
	}
	out := make([]models.TradeRecord, 0, len(trades))
	for _, t := range trades {
		if r.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// FilterDailyEntries applies the same range semantics to a daily series,
// so the trade view and the day view stay consistent under one filter.
func FilterDailyEntries(days []models.DailyEntry, r models.DateRange) []models.DailyEntry {
	if r.IsZero() {
		return days
	}
	out := make([]models.DailyEntry, 0, len(days))
	for _, d := range days {
		if r.Contains(d.Date) {
			out = append(out, d)
		}
	}
	return out
}

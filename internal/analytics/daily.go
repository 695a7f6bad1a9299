package analytics

import (
	"sort"

	"github.com/tradelens/internal/models"
)

// BuildDailyEntries folds trades into one entry per calendar day, ordered
// by ascending date, with the cumulative PnL running over the whole input.
// Call this on the full dataset, not a filtered view: the equity curve is
// a prefix sum and must stay continuous when a range filter is applied on
// top of it.
func BuildDailyEntries(trades []models.TradeRecord) []models.DailyEntry {
	byDate := make(map[string]*models.DailyEntry)
	for _, t := range trades {
		e, ok := byDate[t.Date]
		if !ok {
			e = &models.DailyEntry{Date: t.Date}
			byDate[t.Date] = e
		}
		e.DailyPnL += t.NetPnL
		e.TradeCount++
	}

	days := make([]models.DailyEntry, 0, len(byDate))
	for _, e := range byDate {
		days = append(days, *e)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	cum := 0.0
	for i := range days {
		cum += days[i].DailyPnL
		days[i].CumulativePnL = cum
	}
	return days
}

// DaySummary derives day-level statistics from a daily series: the best
// and worst day, the share of positive days, and the heaviest session.
// BestDayPctOfTotal is only meaningful against a positive total and is 0
// otherwise.
func DaySummary(days []models.DailyEntry) models.DayStats {
	var ds models.DayStats
	if len(days) == 0 {
		return ds
	}

	var total float64
	winningDays := 0
	ds.BestDay = days[0].DailyPnL
	ds.WorstDay = days[0].DailyPnL

	for _, d := range days {
		total += d.DailyPnL
		if d.DailyPnL > 0 {
			winningDays++
		}
		if d.DailyPnL > ds.BestDay {
			ds.BestDay = d.DailyPnL
		}
		if d.DailyPnL < ds.WorstDay {
			ds.WorstDay = d.DailyPnL
		}
		if d.TradeCount > ds.MostActiveDayTrades {
			ds.MostActiveDayTrades = d.TradeCount
		}
	}

	ds.DayWinRate = float64(winningDays) / float64(len(days)) * 100
	if total > 0 {
		ds.BestDayPctOfTotal = ds.BestDay / total * 100
	}
	return ds
}

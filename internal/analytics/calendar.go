package analytics

import (
	"fmt"
	"time"

	"github.com/tradelens/internal/models"
)

// AggregateMonth lays a daily series out as a calendar grid for one month.
// Weeks start on Sunday; leading and trailing cells outside the month are
// nil. A week row is flushed when the grid reaches Saturday or when the
// last day of the month is placed. Cells for days without an entry carry a
// nil Entry, which is not the same thing as an entry that netted zero.
func AggregateMonth(days []models.DailyEntry, year, month int) models.MonthGrid {
	grid := models.MonthGrid{Year: year, Month: month}

	byDate := make(map[string]models.DailyEntry, len(days))
	monthPrefix := fmt.Sprintf("%04d-%02d", year, month)
	for _, d := range days {
		byDate[d.Date] = d
		if len(d.Date) >= 7 && d.Date[:7] == monthPrefix {
			grid.MonthTotal += d.DailyPnL
		}
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	startIdx := int(first.Weekday()) // 0 = Sunday
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var week [7]*models.DayCell
	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%s-%02d", monthPrefix, day)
		cell := &models.DayCell{Day: day, Date: date}
		if e, ok := byDate[date]; ok {
			entry := e
			cell.Entry = &entry
		}

		idx := (startIdx + day - 1) % 7
		week[idx] = cell

		if idx == 6 || day == daysInMonth {
			grid.Weeks = append(grid.Weeks, week)

			var wt models.WeekTotal
			for _, c := range week {
				if c != nil && c.Entry != nil {
					wt.PnL += c.Entry.DailyPnL
					wt.Trades += c.Entry.TradeCount
				}
			}
			grid.WeeklyTotals = append(grid.WeeklyTotals, wt)
			week = [7]*models.DayCell{}
		}
	}
	return grid
}

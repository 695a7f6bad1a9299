package analytics

import (
	"math"

	"github.com/tradelens/internal/models"
)

// Summarize reduces a trade subset to its headline metrics in a single
// pass. A trade is a win iff its net PnL is strictly positive; breakeven
// trades count against the win rate on purpose. An empty subset yields the
// zero value of every statistic, never NaN and never a division by zero.
func Summarize(trades []models.TradeRecord) models.SummaryStats {
	var s models.SummaryStats
	if len(trades) == 0 {
		return s
	}

	var totalDuration, winDuration, lossDuration float64
	maxWin := math.Inf(-1)
	minLoss := math.Inf(1)

	for _, t := range trades {
		s.TotalPnL += t.NetPnL
		s.TotalFees += t.Fees
		totalDuration += t.Duration

		if t.NetPnL > 0 {
			s.Wins++
			s.GrossWin += t.NetPnL
			winDuration += t.Duration
			if t.NetPnL > maxWin {
				maxWin = t.NetPnL
			}
		} else {
			s.Losses++
			s.GrossLoss += math.Abs(t.NetPnL)
			lossDuration += t.Duration
			if t.NetPnL < minLoss {
				minLoss = t.NetPnL
			}
		}
	}

	s.TotalTrades = len(trades)
	s.WinRate = float64(s.Wins) / float64(s.TotalTrades) * 100
	s.ExpectedValue = s.TotalPnL / float64(s.TotalTrades)
	s.AvgDuration = totalDuration / float64(s.TotalTrades)

	switch {
	case s.GrossLoss > 0:
		s.ProfitFactor = s.GrossWin / s.GrossLoss
	case s.GrossWin > 0:
		s.ProfitFactor = math.Inf(1)
	default:
		s.ProfitFactor = 0
	}

	if s.Wins > 0 {
		s.AvgWin = s.GrossWin / float64(s.Wins)
		s.AvgWinDuration = winDuration / float64(s.Wins)
		s.BestTrade = maxWin
	}
	if s.Losses > 0 {
		s.AvgLoss = -s.GrossLoss / float64(s.Losses)
		s.AvgLossDuration = lossDuration / float64(s.Losses)
		s.WorstTrade = minLoss
	}
	return s
}

// DirectionSplit returns the long/short percentage split of a subset.
// Unknown directions count toward neither side.
func DirectionSplit(trades []models.TradeRecord) models.DirectionStats {
	var ds models.DirectionStats
	if len(trades) == 0 {
		return ds
	}
	var longs, shorts int
	for _, t := range trades {
		switch t.Direction {
		case models.DirectionLong:
			longs++
		case models.DirectionShort:
			shorts++
		}
	}
	total := float64(len(trades))
	ds.LongPct = float64(longs) / total * 100
	ds.ShortPct = float64(shorts) / total * 100
	return ds
}

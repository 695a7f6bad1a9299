package analytics

import (
	"math"

	"github.com/tradelens/internal/models"
)

// Band is one partition of a continuous trade attribute. Matching a trade
// into a band is caller-defined so the same bucketer serves duration,
// price, or any other measure.
type Band struct {
	Label string
	Match func(t models.TradeRecord) bool
}

// DurationBands returns the fixed duration partition used for the
// hold-time distribution chart. The order is part of the contract: charts
// need the same axis run over run, so bands are never derived from data.
func DurationBands() []Band {
	type span struct {
		label    string
		min, max float64 // [min, max) seconds
	}
	spans := []span{
		{"Under 15 sec", 0, 15},
		{"15-45 sec", 15, 45},
		{"45 sec - 1 min", 45, 60},
		{"1 min - 2 min", 60, 120},
		{"2 min - 5 min", 120, 300},
		{"5 min - 10 min", 300, 600},
		{"10 min - 30 min", 600, 1800},
		{"30 min - 1 hour", 1800, 3600},
		{"1 hour - 2 hours", 3600, 7200},
		{"2 hours - 4 hours", 7200, 14400},
		{"4 hours and up", 14400, math.Inf(1)},
	}

	bands := make([]Band, len(spans))
	for i, sp := range spans {
		sp := sp
		bands[i] = Band{
			Label: sp.label,
			Match: func(t models.TradeRecord) bool {
				return t.Duration >= sp.min && t.Duration < sp.max
			},
		}
	}
	return bands
}

// Bucket partitions trades into the given bands and computes per-band
// count and win rate. Every declared band appears in the output exactly
// once, in declaration order, with count 0 and win rate 0 when empty.
func Bucket(trades []models.TradeRecord, bands []Band) []models.DistributionBucket {
	out := make([]models.DistributionBucket, len(bands))
	for i, b := range bands {
		out[i].RangeLabel = b.Label

		wins := 0
		for _, t := range trades {
			if !b.Match(t) {
				continue
			}
			out[i].Count++
			if t.NetPnL > 0 {
				wins++
			}
		}
		if out[i].Count > 0 {
			out[i].WinRate = float64(wins) / float64(out[i].Count) * 100
		}
	}
	return out
}

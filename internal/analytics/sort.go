package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/tradelens/internal/models"
)

// Sortable trade fields. Field names are matched case-insensitively with
// underscores ignored, so "entry_price" and "EntryPrice" are equivalent.
const (
	SortByDate       = "date"
	SortBySymbol     = "symbol"
	SortByDirection  = "direction"
	SortByEntryPrice = "entryprice"
	SortByExitPrice  = "exitprice"
	SortByDuration   = "duration"
	SortByPnL        = "pnl"
	SortByNetPnL     = "netpnl"
	SortByFees       = "fees"
)

// SortBy returns a new slice ordered by the given field. Numeric fields
// compare as numbers, everything else compares lexicographically (ISO
// dates are chronological either way). Equal keys keep their original
// input order, in both directions. Any direction other than "desc"
// behaves as ascending; an unknown field leaves the order untouched.
func SortBy(trades []models.TradeRecord, field, direction string) []models.TradeRecord {
	out := make([]models.TradeRecord, len(trades))
	copy(out, trades)

	cmp := comparator(field)
	if cmp == nil {
		return out
	}
	desc := strings.EqualFold(strings.TrimSpace(direction), "desc")

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func comparator(field string) func(a, b models.TradeRecord) int {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(field)), "_", "")
	switch key {
	case SortByDate:
		return func(a, b models.TradeRecord) int { return strings.Compare(a.Date, b.Date) }
	case SortBySymbol:
		return func(a, b models.TradeRecord) int { return strings.Compare(a.Symbol, b.Symbol) }
	case SortByDirection:
		return func(a, b models.TradeRecord) int {
			return strings.Compare(string(a.Direction), string(b.Direction))
		}
	case SortByEntryPrice:
		return func(a, b models.TradeRecord) int { return comparePtr(a.EntryPrice, b.EntryPrice) }
	case SortByExitPrice:
		return func(a, b models.TradeRecord) int { return comparePtr(a.ExitPrice, b.ExitPrice) }
	case SortByDuration:
		return func(a, b models.TradeRecord) int { return compareFloat(a.Duration, b.Duration) }
	case SortByPnL:
		return func(a, b models.TradeRecord) int { return compareFloat(a.PnL, b.PnL) }
	case SortByNetPnL:
		return func(a, b models.TradeRecord) int { return compareFloat(a.NetPnL, b.NetPnL) }
	case SortByFees:
		return func(a, b models.TradeRecord) int { return compareFloat(a.Fees, b.Fees) }
	default:
		return nil
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// comparePtr orders unknown prices before any known price
func comparePtr(a, b *float64) int {
	av, bv := math.Inf(-1), math.Inf(-1)
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return compareFloat(av, bv)
}

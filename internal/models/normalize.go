package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawTrade is one row of an export after column mapping, all fields still
// free text. Empty string means the column was absent or blank.
type RawTrade struct {
	Date       string
	Symbol     string
	Direction  string
	EntryPrice string
	ExitPrice  string
	Duration   string
	PnL        string
	Fees       string
	NetPnL     string
}

// ValidationError reports a raw record that cannot become a TradeRecord
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid trade record: %s %s", e.Field, e.Reason)
}

// Normalize validates a raw record and produces an immutable TradeRecord.
// Date and PnL are mandatory; an unparseable PnL is a hard error, while
// optional numerics degrade to their zero defaults. NetPnL is derived as
// pnl - fees when the export does not carry it.
func Normalize(raw RawTrade) (TradeRecord, error) {
	if strings.TrimSpace(raw.Date) == "" {
		return TradeRecord{}, &ValidationError{Field: "date", Reason: "is missing"}
	}
	if strings.TrimSpace(raw.PnL) == "" {
		return TradeRecord{}, &ValidationError{Field: "pnl", Reason: "is missing"}
	}

	date, ok := ParseDate(raw.Date)
	if !ok {
		return TradeRecord{}, &ValidationError{Field: "date", Reason: "is not a recognized date: " + raw.Date}
	}

	pnl, err := parseMoney(raw.PnL)
	if err != nil {
		return TradeRecord{}, &ValidationError{Field: "pnl", Reason: "is not numeric: " + raw.PnL}
	}

	// Optional numerics never fail the record.
	fees := decimal.Zero
	if v, err := parseMoney(raw.Fees); err == nil {
		fees = v
	}

	net := pnl.Sub(fees)
	if v, err := parseMoney(raw.NetPnL); err == nil && strings.TrimSpace(raw.NetPnL) != "" {
		net = v
	}

	duration := ParseDurationSeconds(raw.Duration)
	if duration < 0 {
		duration = 0
	}

	rec := TradeRecord{
		Date:       date,
		Symbol:     strings.TrimSpace(raw.Symbol),
		Direction:  ParseDirection(raw.Direction),
		EntryPrice: parsePrice(raw.EntryPrice),
		ExitPrice:  parsePrice(raw.ExitPrice),
		Duration:   duration,
		PnL:        pnl.InexactFloat64(),
		Fees:       fees.InexactFloat64(),
		NetPnL:     net.InexactFloat64(),
	}
	return rec, nil
}

// ParseDate accepts ISO dates and the US-style timestamps trading
// platforms export ("11/04/2025 16:47:10 +01:00"), returning YYYY-MM-DD.
func ParseDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	// Timestamps: keep the date token only.
	if i := strings.IndexAny(s, " T"); i > 0 {
		s = s[:i]
	}
	for _, layout := range []string{"2006-01-02", "01/02/2006", "2006/01/02", "02.01.2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// ParseDurationSeconds converts a duration cell to seconds. Accepts plain
// numbers and HH:MM:SS / MM:SS clock strings; anything else is 0.
func ParseDurationSeconds(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}
	total := 0.0
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0
		}
		total = total*60 + v
	}
	return total
}

// parseMoney parses a monetary cell, tolerating currency symbols, thousand
// separators and accounting-style negatives like "(12.34)".
func parseMoney(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty")
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer("$", "", "€", "", ",", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

func parsePrice(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return nil
	}
	d, err := parseMoney(s)
	if err != nil {
		return nil
	}
	v := d.InexactFloat64()
	if v < 0 {
		return nil
	}
	return &v
}

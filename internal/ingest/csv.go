// Package ingest turns platform CSV exports into normalized trade
// records. Column headers differ per platform, so mapping is best effort:
// for each logical field a list of known header spellings is probed in
// order and the first hit wins.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tradelens/internal/models"
)

var (
	ErrEmptyFile      = errors.New("csv file is empty")
	ErrMissingColumns = errors.New("csv must contain at least a date and a pnl column")
	ErrNoValidRows    = errors.New("csv contains no valid trade rows")
)

// Header spellings per logical column, probed in order.
var (
	pnlCandidates       = []string{"pnl", "profit", "net profit", "net_profit", "pl", "amount"}
	dateCandidates      = []string{"date", "exit date", "close date", "time", "close time", "exitedat", "trade day", "tradeday", "enteredat"}
	symbolCandidates    = []string{"symbol", "ticker", "instrument", "asset", "contractname", "contract"}
	durationCandidates  = []string{"duration", "holding time", "tradeduration", "trade duration"}
	directionCandidates = []string{"direction", "type", "side"}
	feesCandidates      = []string{"fees", "fee", "commission", "commissions", "cost"}
	netPnLCandidates    = []string{"netpnl", "net pnl", "net_pnl"}
	entryPxCandidates   = []string{"entryprice", "entry price", "entry"}
	exitPxCandidates    = []string{"exitprice", "exit price", "exit"}
	enteredCandidates   = []string{"enteredat", "entered at", "entry time", "open time", "formatted_entry_time"}
	exitedCandidates    = []string{"exitedat", "exited at", "exit time", "close time", "formatted_exit_time"}
)

// RowError records a rejected row and why it was rejected
type RowError struct {
	Row    int    `json:"row"` // 1-based data row, header excluded
	Reason string `json:"reason"`
}

// Result is the outcome of parsing one upload. Invalid rows are skipped
// and reported rather than silently dropped; the parse as a whole fails
// only when a mandatory column is missing or nothing survives.
type Result struct {
	Trades   []models.TradeRecord `json:"trades"`
	Skipped  []RowError           `json:"skipped"`
	RowCount int                  `json:"row_count"` // data rows seen
}

// ParseCSV reads an export and returns normalized trades plus a report of
// the rows it had to skip.
func ParseCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // exports pad rows inconsistently

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := mapColumns(header)
	if cols.date < 0 || cols.pnl < 0 {
		return nil, ErrMissingColumns
	}

	res := &Result{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		res.RowCount++

		raw := models.RawTrade{
			Date:       cell(row, cols.date),
			Symbol:     cell(row, cols.symbol),
			Direction:  cell(row, cols.direction),
			EntryPrice: cell(row, cols.entryPrice),
			ExitPrice:  cell(row, cols.exitPrice),
			Duration:   cell(row, cols.duration),
			PnL:        cell(row, cols.pnl),
			Fees:       cell(row, cols.fees),
			NetPnL:     cell(row, cols.netPnL),
		}
		if raw.Duration == "" && cols.entered >= 0 && cols.exited >= 0 {
			raw.Duration = deriveDuration(cell(row, cols.entered), cell(row, cols.exited))
		}

		rec, err := models.Normalize(raw)
		if err != nil {
			res.Skipped = append(res.Skipped, RowError{Row: res.RowCount, Reason: err.Error()})
			continue
		}
		res.Trades = append(res.Trades, rec)
	}

	if res.RowCount == 0 {
		return nil, ErrEmptyFile
	}
	if len(res.Trades) == 0 {
		return nil, ErrNoValidRows
	}
	return res, nil
}

type columnIndex struct {
	date, symbol, direction, duration int
	pnl, fees, netPnL                 int
	entryPrice, exitPrice             int
	entered, exited                   int
}

func mapColumns(header []string) columnIndex {
	lower := make(map[string]int, len(header))
	for i, h := range header {
		lower[strings.ToLower(strings.TrimSpace(h))] = i
	}

	find := func(candidates []string) int {
		for _, c := range candidates {
			if i, ok := lower[c]; ok {
				return i
			}
		}
		return -1
	}

	return columnIndex{
		date:       find(dateCandidates),
		symbol:     find(symbolCandidates),
		direction:  find(directionCandidates),
		duration:   find(durationCandidates),
		pnl:        find(pnlCandidates),
		fees:       find(feesCandidates),
		netPnL:     find(netPnLCandidates),
		entryPrice: find(entryPxCandidates),
		exitPrice:  find(exitPxCandidates),
		entered:    find(enteredCandidates),
		exited:     find(exitedCandidates),
	}
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// deriveDuration computes the holding time in seconds from entry and exit
// timestamps when the export carries no duration column.
func deriveDuration(entered, exited string) string {
	entry, ok1 := parseTimestamp(entered)
	exit, ok2 := parseTimestamp(exited)
	if !ok1 || !ok2 || exit.Before(entry) {
		return ""
	}
	return fmt.Sprintf("%.0f", exit.Sub(entry).Seconds())
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	layouts := []string{
		"01/02/2006 15:04:05 -07:00",
		"01/02/2006 15:04:05",
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

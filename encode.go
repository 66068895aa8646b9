package gbce

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// This file contains the JSONL formats used by the command line:
//
//	stock definitions, one stock per line:
//	  {"symbol":"GIN","type":"preferred","lastDividend":8,"parValue":100,"fixedDividend":2}
//
//	trade journal, one trade per line, in chronological order:
//	  {"time":"2026-10-19T10:00:00Z","symbol":"GIN","quantity":10,"indicator":"buy","price":5.67}

// ErrJournalOrder is returned when replaying a journal whose entries go back in time.
var ErrJournalOrder = errors.New("journal entries are not in chronological order")

// DecodeStocks reads stock definitions in JSONL format and lists them on a
// new exchange. opts are applied to every stock.
func DecodeStocks(r io.Reader, opts ...StockOption) (*Exchange, error) {
	// jstock is the object read from the file using json parser.
	type jstock struct {
		Symbol        string     `json:"symbol"`
		Type          *StockType `json:"type"`
		LastDividend  float64    `json:"lastDividend"`
		ParValue      float64    `json:"parValue"`
		FixedDividend *float64   `json:"fixedDividend"`
	}

	e := NewExchange()
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var js jstock
		if err := json.Unmarshal(line, &js); err != nil {
			return nil, fmt.Errorf("format error on line %d %q: %w", i, string(line), err)
		}
		if js.Type == nil {
			return nil, fmt.Errorf("format error on line %d: missing the property %q", i, "type")
		}
		stockOpts := opts
		if js.FixedDividend != nil {
			stockOpts = append([]StockOption{WithFixedDividend(*js.FixedDividend)}, opts...)
		}
		s, err := NewStock(js.Symbol, *js.Type, js.LastDividend, js.ParValue, stockOpts...)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if err := e.Add(s); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read stock definitions: %w", err)
	}
	return e, nil
}

// JournalEntry is a trade as written in a trade journal.
type JournalEntry struct {
	Time      time.Time
	Symbol    string
	Quantity  int64
	Indicator Indicator
	// Price is kept as written in the journal.
	Price decimal.Decimal
}

// NewJournalEntry returns a journal entry for a trade of symbol at time on.
func NewJournalEntry(on time.Time, symbol string, quantity int64, indicator Indicator, price float64) JournalEntry {
	return JournalEntry{
		Time:      on,
		Symbol:    symbol,
		Quantity:  quantity,
		Indicator: indicator,
		Price:     decimal.NewFromFloat(price),
	}
}

// MarshalJSON writes the entry as a journal line, the price as written.
func (e JournalEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("time", e.Time)
	w.Append("symbol", e.Symbol)
	w.Append("quantity", e.Quantity)
	w.Append("indicator", e.Indicator)
	w.Append("price", json.Number(e.Price.String()))
	return w.MarshalJSON()
}

// EncodeJournalEntry writes e as a single JSONL line.
func EncodeJournalEntry(w io.Writer, e JournalEntry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("cannot encode journal entry: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// DecodeJournal reads a trade journal in JSONL format.
func DecodeJournal(r io.Reader) ([]JournalEntry, error) {
	type jentry struct {
		Time      time.Time       `json:"time"`
		Symbol    string          `json:"symbol"`
		Quantity  *int64           `json:"quantity"`
		Indicator *Indicator       `json:"indicator"`
		Price     *decimal.Decimal `json:"price"`
	}

	var entries []JournalEntry
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var je jentry
		if err := json.Unmarshal(line, &je); err != nil {
			return nil, fmt.Errorf("format error on line %d %q: %w", i, string(line), err)
		}
		if je.Time.IsZero() {
			return nil, fmt.Errorf("format error on line %d: missing the property %q", i, "time")
		}
		if je.Symbol == "" {
			return nil, fmt.Errorf("format error on line %d: missing the property %q", i, "symbol")
		}
		if je.Indicator == nil {
			return nil, fmt.Errorf("format error on line %d: missing the property %q", i, "indicator")
		}
		if je.Quantity == nil {
			return nil, fmt.Errorf("format error on line %d: missing the property %q", i, "quantity")
		}
		if *je.Quantity <= 0 {
			return nil, fmt.Errorf("format error on line %d: quantity must be positive, got %d", i, *je.Quantity)
		}
		if je.Price == nil {
			return nil, fmt.Errorf("format error on line %d: missing the property %q", i, "price")
		}
		if !je.Price.IsPositive() {
			return nil, fmt.Errorf("format error on line %d: price must be positive, got %s", i, je.Price)
		}
		entries = append(entries, JournalEntry{
			Time:      je.Time,
			Symbol:    je.Symbol,
			Quantity:  *je.Quantity,
			Indicator: *je.Indicator,
			Price:     *je.Price,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read journal: %w", err)
	}
	return entries, nil
}

// Replay records every entry on the exchange, in order, with clock set to
// the entry time, so that trades keep the timestamp of the journal.
// The stocks of the exchange must have been created WithClock(clock).
//
// The clock is left at the time of the last entry.
func Replay(e *Exchange, entries []JournalEntry, clock *ManualClock) error {
	var last time.Time
	for i, entry := range entries {
		if entry.Time.Before(last) {
			return fmt.Errorf("entry #%d at %s is before %s: %w", i+1, entry.Time.Format(time.RFC3339), last.Format(time.RFC3339), ErrJournalOrder)
		}
		last = entry.Time
		clock.Set(entry.Time)
		if err := e.RecordTrade(entry.Symbol, entry.Quantity, entry.Indicator, entry.Price.InexactFloat64()); err != nil {
			return fmt.Errorf("entry #%d: %w", i+1, err)
		}
	}
	return nil
}

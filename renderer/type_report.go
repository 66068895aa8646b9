package renderer

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/etnz/gbce"
	"github.com/shopspring/decimal"
)

// Currency of the turnover. Prices are quoted in pennies.
const Currency = money.GBP

// Report is a struct to represent the state of the exchange for rendering.
type Report struct {
	// AsOf is the time the metrics were computed at.
	AsOf time.Time `json:"asOf"`
	// Window is the trailing window of the VWSP, volume and turnover.
	Window string `json:"window"`
	// Stocks are sorted by symbol.
	Stocks []StockReport `json:"stocks"`
	// Index is the all share index over Window.
	Index Value `json:"index"`
	// IndexError explains why Index is missing.
	IndexError string `json:"indexError,omitempty"`
}

// StockReport holds the definition and the metrics of a single stock.
type StockReport struct {
	Symbol        string `json:"symbol"`
	Type          string `json:"type"`
	LastDividend  Value  `json:"lastDividend"`
	FixedDividend Value  `json:"fixedDividend"`
	ParValue      Value  `json:"parValue"`
	LastPrice     Value  `json:"lastPrice"`
	DividendYield Value  `json:"dividendYield"`
	PERatio       Value  `json:"peRatio"`
	VWSP          Value  `json:"vwsp"`
	// Trades is the total number of trades recorded.
	Trades int `json:"trades"`
	// Volume is the number of shares traded in the window.
	Volume int64 `json:"volume"`
	// Turnover is the value traded in the window, formatted in Currency.
	Turnover string `json:"turnover"`
}

// NewReport creates a new Report from the exchange.
//
// asOf must be the current time of the stocks' clock, it anchors the window
// for the volume and turnover.
func NewReport(e *gbce.Exchange, asOf time.Time, window time.Duration) *Report {
	r := &Report{
		AsOf:   asOf,
		Window: window.String(),
		Stocks: make([]StockReport, 0, e.Len()),
	}
	for s := range e.Stocks() {
		r.Stocks = append(r.Stocks, newStockReport(s, asOf, window))
	}

	index, err := e.AllShareIndexWithin(window)
	if err != nil {
		r.IndexError = err.Error()
	} else {
		r.Index = Some(index)
	}
	return r
}

func newStockReport(s *gbce.Stock, asOf time.Time, window time.Duration) StockReport {
	snap := s.Snapshot(window)
	from := asOf.Add(-window)

	var volume int64
	turnover := decimal.Zero
	for _, t := range snap.Trades {
		if !t.Timestamp().After(from) || t.Timestamp().After(asOf) {
			continue
		}
		volume += t.Quantity()
		turnover = turnover.Add(decimal.NewFromInt(t.Quantity()).Mul(decimal.NewFromFloat(t.Price())))
	}

	return StockReport{
		Symbol:        s.Symbol(),
		Type:          s.Type().String(),
		LastDividend:  Some(s.LastDividend()),
		FixedDividend: ValueOf(s.FixedDividend()),
		ParValue:      Some(s.ParValue()),
		LastPrice:     ValueOf(snap.LastPrice, snap.Traded),
		DividendYield: Some(snap.DividendYield),
		PERatio:       ValueOf(snap.PERatio, snap.HasPERatio),
		VWSP:          ValueOf(snap.VWSP, snap.HasVWSP),
		Trades:        len(snap.Trades),
		Volume:        volume,
		Turnover:      formatPennies(turnover),
	}
}

// formatPennies formats an amount of pennies in Currency, rounded to the penny.
func formatPennies(pennies decimal.Decimal) string {
	return money.New(pennies.Round(0).IntPart(), Currency).Display()
}

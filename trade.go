package gbce

import "time"

// Trade is a single trade recorded against a stock.
// Trades are created by Stock.RecordTrade and never change afterwards.
type Trade struct {
	timestamp time.Time
	quantity  int64
	indicator Indicator
	price     float64
}

// Timestamp returns the time the trade was recorded.
func (t Trade) Timestamp() time.Time { return t.timestamp }

// Quantity returns the number of shares traded.
func (t Trade) Quantity() int64 { return t.quantity }

// Indicator returns whether the trade was a buy or a sell.
func (t Trade) Indicator() Indicator { return t.indicator }

// Price returns the price per share.
func (t Trade) Price() float64 { return t.price }

// value is the traded value, quantity times price.
func (t Trade) value() float64 { return float64(t.quantity) * t.price }

// MarshalJSON writes the trade as an ordered JSON object.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("time", t.timestamp)
	w.Append("quantity", t.quantity)
	w.Append("indicator", t.indicator)
	w.Append("price", t.price)
	return w.MarshalJSON()
}

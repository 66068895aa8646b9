package gbce

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"sync"
	"time"
)

// DefaultWindow is the trailing window used by VWSP and by the all share index.
const DefaultWindow = 5 * time.Minute

var (
	// ErrInvalidStock is returned when a stock cannot be built from its attributes.
	ErrInvalidStock = errors.New("invalid stock")
	// ErrMissingFixedDividend is returned when a preferred stock is declared without a fixed dividend.
	ErrMissingFixedDividend = errors.New("preferred stock requires a fixed dividend")
)

// Stock is an equity instrument listed on the exchange, together with the
// trades recorded against it.
//
// A Stock is safe for concurrent use.
type Stock struct {
	symbol           string
	stockType        StockType
	lastDividend     float64
	parValue         float64
	fixedDividend    float64
	hasFixedDividend bool
	clock            Clock

	mu sync.Mutex
	// lastPrice caches the price of the last trade, it is set on every
	// RecordTrade and is valid iff len(trades) > 0.
	lastPrice float64
	trades    []Trade
}

// StockOption configures optional attributes of a Stock.
type StockOption func(*Stock)

// WithFixedDividend sets the fixed dividend of a stock. It is mandatory for
// preferred stocks. The value is applied as is to the par value, it is not
// divided by 100.
func WithFixedDividend(f float64) StockOption {
	return func(s *Stock) {
		s.fixedDividend = f
		s.hasFixedDividend = true
	}
}

// WithClock sets the time source used to stamp trades and anchor windows.
// Stocks use SystemClock by default.
func WithClock(c Clock) StockOption {
	return func(s *Stock) { s.clock = c }
}

// NewStock returns a new stock with no trades.
func NewStock(symbol string, t StockType, lastDividend, parValue float64, opts ...StockOption) (*Stock, error) {
	s := &Stock{
		symbol:       symbol,
		stockType:    t,
		lastDividend: lastDividend,
		parValue:     parValue,
		clock:        SystemClock,
	}
	for _, opt := range opts {
		opt(s)
	}
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrInvalidStock)
	}
	if !t.valid() {
		return nil, fmt.Errorf("%w %q: unknown stock type %d", ErrInvalidStock, symbol, int(t))
	}
	if s.clock == nil {
		return nil, fmt.Errorf("%w %q: nil clock", ErrInvalidStock, symbol)
	}
	if t == Preferred && !s.hasFixedDividend {
		return nil, fmt.Errorf("stock %q: %w", symbol, ErrMissingFixedDividend)
	}
	return s, nil
}

// Symbol returns the stock symbol, e.g. "POP".
func (s *Stock) Symbol() string { return s.symbol }

// Type returns whether the stock is common or preferred.
func (s *Stock) Type() StockType { return s.stockType }

// LastDividend returns the last dividend paid per share.
func (s *Stock) LastDividend() float64 { return s.lastDividend }

// ParValue returns the nominal value of a share.
func (s *Stock) ParValue() float64 { return s.parValue }

// FixedDividend returns the fixed dividend, if any was declared.
func (s *Stock) FixedDividend() (float64, bool) { return s.fixedDividend, s.hasFixedDividend }

// LastPrice returns the price of the most recent trade, false if the stock
// was never traded.
func (s *Stock) LastPrice() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPrice, len(s.trades) > 0
}

// Trades returns a copy of the recorded trades, oldest first.
func (s *Stock) Trades() []Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.trades)
}

// RecordTrade records a trade at the current time of the stock's clock and
// makes price the last price.
//
// Quantity and price are not validated, they should both be positive.
func (s *Stock) RecordTrade(quantity int64, indicator Indicator, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	// timestamps never go backwards, even if the clock does.
	if n := len(s.trades); n > 0 && now.Before(s.trades[n-1].timestamp) {
		now = s.trades[n-1].timestamp
	}
	s.lastPrice = price
	s.trades = append(s.trades, Trade{
		timestamp: now,
		quantity:  quantity,
		indicator: indicator,
		price:     price,
	})
}

// DividendYield returns the dividend yield at the last price.
//
// It returns 0 when the stock was never traded.
func (s *Stock) DividendYield() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dividendYield()
}

func (s *Stock) dividendYield() float64 {
	if len(s.trades) == 0 {
		return 0
	}
	if s.stockType == Common {
		return s.lastDividend / s.lastPrice
	}
	return (s.fixedDividend * s.parValue) / s.lastPrice
}

// PERatio returns the price/earnings ratio at the last price.
//
// There is no ratio if the stock was never traded or if it pays no dividend.
func (s *Stock) PERatio() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peRatio()
}

func (s *Stock) peRatio() (float64, bool) {
	if s.lastDividend <= 0 || len(s.trades) == 0 {
		return 0, false
	}
	return s.lastPrice / s.dividendYield(), true
}

// VWSP returns the volume weighted stock price over the DefaultWindow.
func (s *Stock) VWSP() (float64, bool) { return s.VWSPWithin(DefaultWindow) }

// VWSPWithin returns the volume weighted stock price of the trades recorded
// strictly after now - window.
//
// There is no price if no shares were traded in the window.
func (s *Stock) VWSPWithin(window time.Duration) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vwspWithin(s.clock.Now(), window)
}

func (s *Stock) vwspWithin(now time.Time, window time.Duration) (float64, bool) {
	from := now.Add(-window)
	// trades are sorted by timestamp.
	first := sort.Search(len(s.trades), func(i int) bool {
		return s.trades[i].timestamp.After(from)
	})

	var value float64
	var volume int64
	for _, t := range s.trades[first:] {
		value += t.value()
		volume += t.quantity
	}
	if volume == 0 {
		return 0, false
	}
	return value / float64(volume), true
}

// String returns a short description of the stock for debugging.
func (s *Stock) String() string {
	price, ok := s.LastPrice()
	fixed, hasFixed := s.FixedDividend()
	return fmt.Sprintf("Stock(%s, price=%s, type=%s, lastDividend=%s, parValue=%s, fixedDividend=%s)",
		s.symbol, optional(price, ok), s.stockType, optional(s.lastDividend, true),
		optional(s.parValue, true), optional(fixed, hasFixed))
}

// optional formats a (value, ok) pair, "none" standing for a missing value.
func optional(v float64, ok bool) string {
	if !ok {
		return "none"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Snapshot is the state and the metrics of a stock at a single point in time.
type Snapshot struct {
	// Now is the time of the stock's clock when the snapshot was taken.
	Now           time.Time
	LastPrice     float64
	Traded        bool
	DividendYield float64
	PERatio       float64
	HasPERatio    bool
	VWSP          float64
	HasVWSP       bool
	// Trades is a copy of the recorded trades, oldest first.
	Trades []Trade
}

// Snapshot returns the metrics of the stock, with the VWSP over window, all
// read under the same lock so that a concurrent RecordTrade cannot interleave.
func (s *Stock) Snapshot(window time.Duration) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	snap := Snapshot{
		Now:           now,
		LastPrice:     s.lastPrice,
		Traded:        len(s.trades) > 0,
		DividendYield: s.dividendYield(),
		Trades:        slices.Clone(s.trades),
	}
	snap.PERatio, snap.HasPERatio = s.peRatio()
	snap.VWSP, snap.HasVWSP = s.vwspWithin(now, window)
	return snap
}

// MarshalJSON writes the stock definition, its last price and its trades.
func (s *Stock) MarshalJSON() ([]byte, error) {
	s.mu.Lock()
	price, traded := s.lastPrice, len(s.trades) > 0
	trades := append([]Trade{}, s.trades...)
	s.mu.Unlock()
	fixed, hasFixed := s.FixedDividend()

	var w jsonObjectWriter
	w.Append("symbol", s.symbol)
	w.Append("type", s.stockType)
	w.Append("lastDividend", s.lastDividend)
	w.Append("parValue", s.parValue)
	w.AppendIf(hasFixed, "fixedDividend", fixed)
	w.AppendIf(traded, "lastPrice", price)
	w.Append("trades", trades)
	return w.MarshalJSON()
}

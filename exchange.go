package gbce

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"
)

var (
	// ErrDuplicateSymbol is returned when adding a stock whose symbol is already listed.
	ErrDuplicateSymbol = errors.New("symbol already listed")
	// ErrUnknownSymbol is returned when trading a symbol that is not listed.
	ErrUnknownSymbol = errors.New("unknown symbol")
)

// Exchange lists stocks by symbol.
type Exchange struct {
	mu     sync.RWMutex
	stocks map[string]*Stock
}

// NewExchange returns a new exchange with no stocks listed.
func NewExchange() *Exchange {
	return &Exchange{stocks: make(map[string]*Stock)}
}

// Add lists s on the exchange.
func (e *Exchange) Add(s *Stock) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.stocks[s.Symbol()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateSymbol, s.Symbol())
	}
	e.stocks[s.Symbol()] = s
	return nil
}

// Has reports whether a stock is listed under symbol.
func (e *Exchange) Has(symbol string) bool {
	_, ok := e.Get(symbol)
	return ok
}

// Get returns the stock listed under symbol.
func (e *Exchange) Get(symbol string) (*Stock, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.stocks[symbol]
	return s, ok
}

// Len returns the number of listed stocks.
func (e *Exchange) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.stocks)
}

// Symbols returns the listed symbols in alphabetical order.
func (e *Exchange) Symbols() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	symbols := make([]string, 0, len(e.stocks))
	for symbol := range e.stocks {
		symbols = append(symbols, symbol)
	}
	slices.Sort(symbols)
	return symbols
}

// Stocks iterates over the listed stocks in alphabetical order of their symbol.
func (e *Exchange) Stocks() iter.Seq[*Stock] {
	return func(yield func(*Stock) bool) {
		for _, symbol := range e.Symbols() {
			s, ok := e.Get(symbol)
			if !ok {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

// RecordTrade records a trade against the stock listed under symbol.
func (e *Exchange) RecordTrade(symbol string, quantity int64, indicator Indicator, price float64) error {
	s, ok := e.Get(symbol)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
	}
	s.RecordTrade(quantity, indicator, price)
	return nil
}

// AllShareIndex returns the all share index over every listed stock.
func (e *Exchange) AllShareIndex() (float64, error) {
	return e.AllShareIndexWithin(DefaultWindow)
}

// AllShareIndexWithin is like AllShareIndex with VWSPs over window.
func (e *Exchange) AllShareIndexWithin(window time.Duration) (float64, error) {
	return AllShareIndexWithin(slices.Collect(e.Stocks()), window)
}

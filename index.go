package gbce

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrEmptyIndex is returned when computing an index over no stock at all.
	ErrEmptyIndex = errors.New("no stock in the index")
	// ErrNoData is returned when a stock of the index has no VWSP.
	ErrNoData = errors.New("no trade in the window")
)

// AllShareIndex returns the GBCE all share index of stocks: the geometric
// mean of their VWSP over the DefaultWindow.
//
// Every stock must have traded within the window, otherwise the error wraps
// ErrNoData and names the first stock without a VWSP.
func AllShareIndex(stocks []*Stock) (float64, error) {
	return AllShareIndexWithin(stocks, DefaultWindow)
}

// AllShareIndexWithin is like AllShareIndex with VWSPs over window.
func AllShareIndexWithin(stocks []*Stock, window time.Duration) (float64, error) {
	if len(stocks) == 0 {
		return 0, ErrEmptyIndex
	}
	product := 1.0
	for i, s := range stocks {
		if s == nil {
			return 0, fmt.Errorf("stock #%d is nil: %w", i, ErrNoData)
		}
		vwsp, ok := s.VWSPWithin(window)
		if !ok {
			return 0, fmt.Errorf("stock %q: %w", s.Symbol(), ErrNoData)
		}
		product *= vwsp
	}
	return math.Pow(product, 1/float64(len(stocks))), nil
}

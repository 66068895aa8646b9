package gbce

import (
	"math"
	"testing"
	"time"
)

// t0 is an arbitrary origin for test clocks.
var t0 = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// closeTo reports whether a and b are equal with a relative precision of 1e-9.
func closeTo(a, b float64) bool {
	const precision = 1e-9
	return math.Abs(a-b) <= precision*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// sampleTrades is the trade sequence used by the reference tests.
var sampleTrades = []struct {
	quantity  int64
	indicator Indicator
	price     float64
}{
	{1, Buy, 5},
	{100, Buy, 5.67},
	{30, Sell, 6.12},
	{130, Buy, 6.88},
	{30, Sell, 7.9},
}

// newReferenceStock returns one of the reference stocks using clock.
func newReferenceStock(t *testing.T, symbol string, clock Clock) *Stock {
	t.Helper()
	s, ok := NewReferenceExchange(WithClock(clock)).Get(symbol)
	if !ok {
		t.Fatalf("reference stock %q not found", symbol)
	}
	return s
}

package gbce

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestAllShareIndex(t *testing.T) {
	foo := must(NewStock("FOO", Common, 1, 80))
	foo.RecordTrade(5, Buy, 9.5)
	foo.RecordTrade(50, Buy, 9.7)

	bar := must(NewStock("BAR", Preferred, 2, 50, WithFixedDividend(3)))
	bar.RecordTrade(15, Buy, 10.1)
	bar.RecordTrade(30, Sell, 10.2)

	baz := must(NewStock("BAZ", Common, 5, 100))
	baz.RecordTrade(15, Buy, 10.1)
	baz.RecordTrade(100, Buy, 9)
	baz.RecordTrade(80, Sell, 15.2)

	got, err := AllShareIndex([]*Stock{foo, bar, baz})
	if err != nil {
		t.Fatalf("AllShareIndex() unexpected error: %v", err)
	}
	if want := 10.460426619142797; !closeTo(got, want) {
		t.Errorf("AllShareIndex() = %v, want %v", got, want)
	}
}

func TestAllShareIndex_GeometricMean(t *testing.T) {
	clock := NewManualClock(t0)
	prices := []float64{5, 5.663366336633663, 12.5, 0.75}
	var stocks []*Stock
	product := 1.0
	for i, p := range prices {
		s := must(NewStock(string(rune('A'+i)), Common, 1, 100, WithClock(clock)))
		s.RecordTrade(100, Buy, p)
		stocks = append(stocks, s)
		product *= p
	}

	got, err := AllShareIndex(stocks)
	if err != nil {
		t.Fatalf("AllShareIndex() unexpected error: %v", err)
	}
	if want := math.Pow(product, 1.0/4); !closeTo(got, want) {
		t.Errorf("AllShareIndex() = %v, want %v", got, want)
	}

	single, err := AllShareIndex(stocks[:1])
	if err != nil {
		t.Fatalf("AllShareIndex() unexpected error: %v", err)
	}
	if single != 5 {
		t.Errorf("AllShareIndex() of a single stock = %v, want its VWSP 5", single)
	}
}

func TestAllShareIndex_Errors(t *testing.T) {
	clock := NewManualClock(t0)
	traded := must(NewStock("POP", Common, 8, 100, WithClock(clock)))
	traded.RecordTrade(10, Buy, 5)
	never := must(NewStock("TEA", Common, 0, 100, WithClock(clock)))

	stale := must(NewStock("ALE", Common, 23, 60, WithClock(clock)))
	clock.Set(t0.Add(-time.Hour))
	stale.RecordTrade(10, Buy, 5)
	clock.Set(t0)

	tests := []struct {
		name    string
		stocks  []*Stock
		wantErr error
	}{
		{name: "nil", stocks: nil, wantErr: ErrEmptyIndex},
		{name: "empty", stocks: []*Stock{}, wantErr: ErrEmptyIndex},
		{name: "never traded", stocks: []*Stock{traded, never}, wantErr: ErrNoData},
		{name: "no trade in the window", stocks: []*Stock{stale, traded}, wantErr: ErrNoData},
		{name: "nil stock", stocks: []*Stock{traded, nil}, wantErr: ErrNoData},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AllShareIndex(tc.stocks)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("AllShareIndex() = %v, %v, want error %v", got, err, tc.wantErr)
			}
		})
	}
}

func TestAllShareIndexWithin(t *testing.T) {
	clock := NewManualClock(t0)
	pop := must(NewStock("POP", Common, 8, 100, WithClock(clock)))
	ale := must(NewStock("ALE", Common, 23, 60, WithClock(clock)))
	pop.RecordTrade(10, Buy, 2)
	ale.RecordTrade(10, Buy, 8)
	clock.Advance(10 * time.Minute)
	ale.RecordTrade(10, Buy, 2)

	stocks := []*Stock{pop, ale}
	if _, err := AllShareIndex(stocks); !errors.Is(err, ErrNoData) {
		t.Errorf("AllShareIndex() error = %v, want %v", err, ErrNoData)
	}
	got, err := AllShareIndexWithin(stocks, time.Hour)
	if err != nil {
		t.Fatalf("AllShareIndexWithin() unexpected error: %v", err)
	}
	// VWSPs are 2 and 5.
	if want := math.Sqrt(10); !closeTo(got, want) {
		t.Errorf("AllShareIndexWithin() = %v, want %v", got, want)
	}
}

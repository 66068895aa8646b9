package gbce

// referenceStocks is the sample data of the Global Beverage Corporation Exchange.
var referenceStocks = []struct {
	symbol        string
	stockType     StockType
	lastDividend  float64
	parValue      float64
	fixedDividend float64
}{
	{"TEA", Common, 0, 100, 0},
	{"POP", Common, 8, 100, 0},
	{"ALE", Common, 23, 60, 0},
	{"GIN", Preferred, 8, 100, 2},
	{"JOE", Common, 13, 250, 0},
}

// NewReferenceExchange returns an exchange listing the GBCE sample stocks,
// with no trades. opts are applied to every stock.
func NewReferenceExchange(opts ...StockOption) *Exchange {
	e := NewExchange()
	for _, r := range referenceStocks {
		stockOpts := opts
		if r.stockType == Preferred {
			stockOpts = append([]StockOption{WithFixedDividend(r.fixedDividend)}, opts...)
		}
		s, err := NewStock(r.symbol, r.stockType, r.lastDividend, r.parValue, stockOpts...)
		if err != nil {
			panic(err) // the reference data is valid.
		}
		if err := e.Add(s); err != nil {
			panic(err)
		}
	}
	return e
}

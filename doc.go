// Package gbce models the stocks of the Global Beverage Corporation Exchange,
// records trades against them and derives standard financial metrics.
//
// The core functionalities include:
//   - Stocks: common or preferred equities with their dividend attributes
//     and the chronological list of trades recorded against them.
//   - Metrics: dividend yield, price/earnings ratio and volume weighted stock
//     price (VWSP) over a trailing window.
//   - Index: the GBCE all share index, the geometric mean of the VWSP of a
//     basket of stocks.
//   - Exchange: a registry of stocks by symbol, and the JSONL formats used to
//     declare stocks and replay a trade journal.
//
// Missing values are returned as (value, ok) pairs. The one exception is the
// dividend yield of a stock that was never traded, which is 0.
//
// This package serves as the foundational logic for the `gbce` command-line
// tool.
package gbce

package cmd

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/etnz/gbce"
	"github.com/google/subcommands"
)

// recordCmd holds the flags for the 'record' subcommand.
type recordCmd struct {
	symbol    string
	quantity  int64
	indicator string
	price     float64
}

func (*recordCmd) Name() string     { return "record" }
func (*recordCmd) Synopsis() string { return "record a trade in the journal" }
func (*recordCmd) Usage() string {
	return `gbce record -s <symbol> -q <quantity> [-i buy|sell] -p <price>

  Appends a trade, stamped with the current time, to the trade journal.
  Prices are in pennies.
`
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Stock symbol")
	f.Int64Var(&c.quantity, "q", 0, "Number of shares")
	f.StringVar(&c.indicator, "i", "buy", "Trade indicator, 'buy' or 'sell'")
	f.Float64Var(&c.price, "p", 0, "Price per share, in pennies")
}

func (c *recordCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 || !(c.price > 0) || math.IsInf(c.price, 0) {
		f.Usage()
		return subcommands.ExitUsageError
	}
	indicator, err := gbce.ParseIndicator(c.indicator)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing indicator: %v\n", err)
		return subcommands.ExitUsageError
	}

	e, err := DecodeExchange()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading stocks: %v\n", err)
		return subcommands.ExitFailure
	}
	if !e.Has(c.symbol) {
		fmt.Fprintf(os.Stderr, "Error: %v: %q\n", gbce.ErrUnknownSymbol, c.symbol)
		return subcommands.ExitFailure
	}

	status := EncodeJournalEntry(gbce.NewJournalEntry(now(), c.symbol, c.quantity, indicator, c.price))
	if status == subcommands.ExitSuccess {
		fmt.Fprintf(os.Stderr, "Successfully appended trade to %s\n", *journalFile)
	}
	return status
}

package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/gbce"
	"github.com/etnz/gbce/renderer"
	"github.com/google/subcommands"
)

// stocksCmd holds the flags for the 'stocks' subcommand.
type stocksCmd struct {
	json bool
}

func (*stocksCmd) Name() string     { return "stocks" }
func (*stocksCmd) Synopsis() string { return "list the stocks listed on the exchange" }
func (*stocksCmd) Usage() string {
	return `gbce stocks [-json]

  Lists the stock definitions. With -json, prints them in the JSONL format
  read by -stocks-file.
`
}

func (c *stocksCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the stock definitions as JSONL")
}

func (c *stocksCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := DecodeExchange()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading stocks: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		for s := range e.Stocks() {
			b, err := json.Marshal(stockDefinition{s})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding stock %q: %v\n", s.Symbol(), err)
				return subcommands.ExitFailure
			}
			fmt.Fprintln(stdout, string(b))
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderStocks(renderer.NewReport(e, now(), gbce.DefaultWindow)))
	return subcommands.ExitSuccess
}

// stockDefinition marshals only the static attributes of a stock.
type stockDefinition struct{ *gbce.Stock }

func (d stockDefinition) MarshalJSON() ([]byte, error) {
	type jstock struct {
		Symbol        string         `json:"symbol"`
		Type          gbce.StockType `json:"type"`
		LastDividend  float64        `json:"lastDividend"`
		ParValue      float64        `json:"parValue"`
		FixedDividend *float64       `json:"fixedDividend,omitempty"`
	}
	js := jstock{
		Symbol:       d.Symbol(),
		Type:         d.Type(),
		LastDividend: d.LastDividend(),
		ParValue:     d.ParValue(),
	}
	if f, ok := d.FixedDividend(); ok {
		js.FixedDividend = &f
	}
	return json.Marshal(js)
}

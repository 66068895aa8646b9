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

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	window window
	json   bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the metrics of every stock and the all share index" }
func (*reportCmd) Usage() string {
	return `gbce report [-w <window>] [-json]

  Replays the trade journal and displays, for every stock, the dividend yield,
  the P/E ratio and the volume weighted stock price over the window, followed
  by the GBCE all share index.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.window = window(gbce.DefaultWindow)
	f.Var(&c.window, "w", "trailing window of the volume weighted stock price")
	f.BoolVar(&c.json, "json", false, "print the report as JSON")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf := now()
	e, err := OpenMarket(asOf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market: %v\n", err)
		return subcommands.ExitFailure
	}

	report := renderer.NewReport(e, asOf, c.window.Duration())
	if c.json {
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintln(stdout, string(b))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderReport(report))
	return subcommands.ExitSuccess
}
